package inventory

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mealplanner/entities"
	"mealplanner/internal/utils"
)

type (
	InventoryRepository interface {
		AddItem(ctx context.Context, item *entities.InventoryItem, history *entities.InventoryHistory) error
		GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error)
		FindItemByName(ctx context.Context, name string) (*entities.InventoryItem, error)
		ListItems(ctx context.Context, category, location string, lowStock bool) ([]*entities.InventoryItem, error)
		GetInStockItems(ctx context.Context) ([]*entities.InventoryItem, error)
		GetExpiringItems(ctx context.Context, cutoff time.Time) ([]*entities.InventoryItem, error)
		SaveItem(ctx context.Context, item *entities.InventoryItem, history *entities.InventoryHistory) error
		DeleteItem(ctx context.Context, id string) error
		GetItemHistory(ctx context.Context, itemID string) ([]*entities.InventoryHistory, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) AddItem(ctx context.Context, item *entities.InventoryItem, history *entities.InventoryHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if history != nil {
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *inventoryRepository) GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindItemByName(ctx context.Context, name string) (*entities.InventoryItem, error) {
	return findItemByName(r.db.WithContext(ctx), name)
}

// findItemByName matches on the normalized (case-folded, trimmed) item name,
// the same rule the suggestion engine and shopping list use.
func findItemByName(db *gorm.DB, name string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := db.Where("LOWER(TRIM(item_name)) = ?", utils.NormalizeName(name)).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) ListItems(ctx context.Context, category, location string, lowStock bool) ([]*entities.InventoryItem, error) {
	query := r.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if location != "" {
		query = query.Where("location = ?", location)
	}
	if lowStock {
		query = query.Where("quantity <= minimum_stock")
	}

	var items []*entities.InventoryItem
	if err := query.Order("item_name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) GetInStockItems(ctx context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("quantity > 0").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) GetExpiringItems(ctx context.Context, cutoff time.Time) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("expiration_date IS NOT NULL AND expiration_date <= ?", cutoff).
		Order("expiration_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) SaveItem(ctx context.Context, item *entities.InventoryItem, history *entities.InventoryHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		if history != nil {
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inventoryRepository) GetItemHistory(ctx context.Context, itemID string) ([]*entities.InventoryHistory, error) {
	var history []*entities.InventoryHistory
	if err := r.db.WithContext(ctx).
		Where("inventory_id = ?", itemID).
		Order("changed_at desc").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
