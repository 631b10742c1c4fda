package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddItem        = "inventory item added successfully"
	MessageSuccessUpdateItem     = "inventory item updated successfully"
	MessageSuccessDeleteItem     = "inventory item deleted successfully"
	MessageSuccessGetItems       = "inventory items retrieved successfully"
	MessageSuccessGetItemHistory = "inventory history retrieved successfully"
	MessageFailedAddItem         = "failed to add inventory item"
	MessageFailedUpdateItem      = "failed to update inventory item"
	MessageFailedDeleteItem      = "failed to delete inventory item"
	MessageFailedGetItems        = "failed to retrieve inventory items"
	MessageFailedGetItemHistory  = "failed to retrieve inventory history"

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrNegativeQuantity      = errors.New("quantity must not be negative")
	ErrInvalidLocation       = errors.New("location must be pantry, fridge, freezer or other")
)

const (
	ChangeTypePurchased    = "purchased"
	ChangeTypeUsed         = "used"
	ChangeTypeExpired      = "expired"
	ChangeTypeAdjusted     = "adjusted"
	ChangeTypeAutoDeducted = "auto_deducted"
)

type (
	AddInventoryItemRequest struct {
		ItemName       string          `json:"item_name" validate:"required,max=255"`
		Quantity       decimal.Decimal `json:"quantity"`
		Unit           string          `json:"unit"`
		Category       string          `json:"category"`
		Location       string          `json:"location" validate:"omitempty,oneof=pantry fridge freezer other"`
		ExpirationDate *time.Time      `json:"expiration_date"`
		MinimumStock   decimal.Decimal `json:"minimum_stock"`
		Notes          string          `json:"notes"`
	}

	UpdateInventoryItemRequest struct {
		ItemName       *string          `json:"item_name" validate:"omitempty,max=255"`
		Quantity       *decimal.Decimal `json:"quantity"`
		Unit           *string          `json:"unit"`
		Category       *string          `json:"category"`
		Location       *string          `json:"location" validate:"omitempty,oneof=pantry fridge freezer other"`
		ExpirationDate *time.Time       `json:"expiration_date"`
		MinimumStock   *decimal.Decimal `json:"minimum_stock"`
		Notes          *string          `json:"notes"`
		Reason         string           `json:"reason"`
	}

	ListInventoryRequest struct {
		Category string
		Location string
		LowStock bool
	}

	InventoryHistoryResponse struct {
		ID             string          `json:"id"`
		ChangeType     string          `json:"change_type"`
		QuantityBefore decimal.Decimal `json:"quantity_before"`
		QuantityAfter  decimal.Decimal `json:"quantity_after"`
		Reason         string          `json:"reason,omitempty"`
		ChangedAt      time.Time       `json:"changed_at"`
	}

	ExpiringItemResponse struct {
		ID                  string          `json:"id"`
		ItemName            string          `json:"item_name"`
		Quantity            decimal.Decimal `json:"quantity"`
		Unit                string          `json:"unit"`
		ExpirationDate      time.Time       `json:"expiration_date"`
		DaysUntilExpiration int             `json:"days_until_expiration"`
	}
)
