package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
)

type (
	InventoryService interface {
		AddItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string) (*entities.InventoryItem, error)
		GetItem(ctx context.Context, itemID string) (*entities.InventoryItem, error)
		ListItems(ctx context.Context, req domain.ListInventoryRequest) ([]*entities.InventoryItem, error)
		UpdateItem(ctx context.Context, itemID string, req domain.UpdateInventoryItemRequest, userID string) (*entities.InventoryItem, error)
		DeleteItem(ctx context.Context, itemID string) error
		GetItemHistory(ctx context.Context, itemID string) ([]domain.InventoryHistoryResponse, error)
		GetExpiringItems(ctx context.Context) ([]domain.ExpiringItemResponse, error)
		Deduct(ctx context.Context, name string, amount decimal.Decimal, reason string, recipeID, userID *uuid.UUID) (*domain.InventoryChange, error)
		AddPurchase(ctx context.Context, req domain.MarkPurchasedRequest, userID string) (*entities.InventoryItem, error)
	}

	inventoryService struct {
		db                  *gorm.DB
		inventoryRepository InventoryRepository
		settings            domain.EngineSettings
	}
)

func NewInventoryService(db *gorm.DB, inventoryRepository InventoryRepository, settings domain.EngineSettings) InventoryService {
	return &inventoryService{
		db:                  db,
		inventoryRepository: inventoryRepository,
		settings:            settings,
	}
}

func (s *inventoryService) AddItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string) (*entities.InventoryItem, error) {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if req.Quantity.IsNegative() || req.MinimumStock.IsNegative() {
		return nil, domain.ErrNegativeQuantity
	}

	item := &entities.InventoryItem{
		ID:             uuid.New(),
		ItemName:       req.ItemName,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Category:       req.Category,
		Location:       req.Location,
		ExpirationDate: req.ExpirationDate,
		MinimumStock:   req.MinimumStock,
		Notes:          req.Notes,
	}
	history := &entities.InventoryHistory{
		ID:             uuid.New(),
		InventoryID:    item.ID,
		ChangeType:     domain.ChangeTypePurchased,
		QuantityBefore: decimal.Zero,
		QuantityAfter:  req.Quantity,
		Reason:         "Initial inventory",
		ChangedBy:      &actorID,
	}

	if err := s.inventoryRepository.AddItem(ctx, item, history); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, itemID string) (*entities.InventoryItem, error) {
	item, err := s.inventoryRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListItems(ctx context.Context, req domain.ListInventoryRequest) ([]*entities.InventoryItem, error) {
	return s.inventoryRepository.ListItems(ctx, req.Category, req.Location, req.LowStock)
}

// UpdateItem applies a manual edit. Any quantity change lands in the history
// as an adjustment; other field edits leave no history row.
func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req domain.UpdateInventoryItemRequest, userID string) (*entities.InventoryItem, error) {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	item, err := s.inventoryRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}

	var history *entities.InventoryHistory
	if req.Quantity != nil && !req.Quantity.Equal(item.Quantity) {
		if req.Quantity.IsNegative() {
			return nil, domain.ErrNegativeQuantity
		}
		reason := req.Reason
		if reason == "" {
			reason = "Manual adjustment"
		}
		history = &entities.InventoryHistory{
			ID:             uuid.New(),
			InventoryID:    item.ID,
			ChangeType:     domain.ChangeTypeAdjusted,
			QuantityBefore: item.Quantity,
			QuantityAfter:  *req.Quantity,
			Reason:         reason,
			ChangedBy:      &actorID,
		}
		item.Quantity = *req.Quantity
	}

	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.ExpirationDate != nil {
		item.ExpirationDate = req.ExpirationDate
	}
	if req.MinimumStock != nil {
		if req.MinimumStock.IsNegative() {
			return nil, domain.ErrNegativeQuantity
		}
		item.MinimumStock = *req.MinimumStock
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if err := s.inventoryRepository.SaveItem(ctx, item, history); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.inventoryRepository.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInventoryItemNotFound
		}
		return err
	}
	return nil
}

func (s *inventoryService) GetItemHistory(ctx context.Context, itemID string) ([]domain.InventoryHistoryResponse, error) {
	if _, err := s.inventoryRepository.GetItemByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}

	history, err := s.inventoryRepository.GetItemHistory(ctx, itemID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.InventoryHistoryResponse, 0, len(history))
	for _, entry := range history {
		responses = append(responses, domain.InventoryHistoryResponse{
			ID:             entry.ID.String(),
			ChangeType:     entry.ChangeType,
			QuantityBefore: entry.QuantityBefore,
			QuantityAfter:  entry.QuantityAfter,
			Reason:         entry.Reason,
			ChangedAt:      entry.ChangedAt,
		})
	}
	return responses, nil
}

func (s *inventoryService) GetExpiringItems(ctx context.Context) ([]domain.ExpiringItemResponse, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, s.settings.ExpirationWarningDays)

	items, err := s.inventoryRepository.GetExpiringItems(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.ExpiringItemResponse, 0, len(items))
	for _, item := range items {
		days := int(item.ExpirationDate.Sub(now).Hours() / 24)
		responses = append(responses, domain.ExpiringItemResponse{
			ID:                  item.ID.String(),
			ItemName:            item.ItemName,
			Quantity:            item.Quantity,
			Unit:                item.Unit,
			ExpirationDate:      *item.ExpirationDate,
			DaysUntilExpiration: days,
		})
	}
	return responses, nil
}

func (s *inventoryService) Deduct(ctx context.Context, name string, amount decimal.Decimal, reason string, recipeID, userID *uuid.UUID) (*domain.InventoryChange, error) {
	var change *domain.InventoryChange
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		change, err = DeductTx(tx, name, amount, reason, recipeID, userID)
		return err
	})
	return change, err
}

// AddPurchase records a shopping purchase: an existing item gains quantity
// with a purchased history row, an unknown item is created on the fly.
func (s *inventoryService) AddPurchase(ctx context.Context, req domain.MarkPurchasedRequest, userID string) (*entities.InventoryItem, error) {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if req.Quantity.IsNegative() {
		return nil, domain.ErrNegativeQuantity
	}

	item, err := s.inventoryRepository.FindItemByName(ctx, req.ItemName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return s.AddItem(ctx, domain.AddInventoryItemRequest{
			ItemName: req.ItemName,
			Quantity: req.Quantity,
			Unit:     req.Unit,
			Category: req.Category,
		}, userID)
	}

	before := item.Quantity
	item.Quantity = before.Add(req.Quantity)
	history := &entities.InventoryHistory{
		ID:             uuid.New(),
		InventoryID:    item.ID,
		ChangeType:     domain.ChangeTypePurchased,
		QuantityBefore: before,
		QuantityAfter:  item.Quantity,
		Reason:         "Shopping list purchase",
		ChangedBy:      &actorID,
	}
	if err := s.inventoryRepository.SaveItem(ctx, item, history); err != nil {
		return nil, err
	}
	return item, nil
}
