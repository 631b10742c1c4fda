package inventory

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
)

// DeductTx subtracts amount from the inventory item matching name, clamping
// at zero, and appends an auto_deducted history row. An untracked name is a
// no-op (cooking with salt nobody bothered to stock is not a fault); the
// returned change is nil in that case. Runs on the caller's transaction so
// the cook-transition stays atomic.
func DeductTx(tx *gorm.DB, name string, amount decimal.Decimal, reason string, recipeID *uuid.UUID, userID *uuid.UUID) (*domain.InventoryChange, error) {
	item, err := findItemByName(tx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	before := item.Quantity
	after := before.Sub(amount)
	if after.IsNegative() {
		after = decimal.Zero
	}

	if err := tx.Model(&entities.InventoryItem{}).
		Where("id = ?", item.ID).
		Update("quantity", after).Error; err != nil {
		return nil, err
	}

	history := &entities.InventoryHistory{
		ID:             uuid.New(),
		InventoryID:    item.ID,
		ChangeType:     domain.ChangeTypeAutoDeducted,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         reason,
		RecipeID:       recipeID,
		ChangedBy:      userID,
	}
	if err := tx.Create(history).Error; err != nil {
		return nil, err
	}

	return &domain.InventoryChange{
		ItemName:         item.ItemName,
		QuantityDeducted: amount,
	}, nil
}
