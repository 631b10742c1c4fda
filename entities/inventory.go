package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ItemName       string          `gorm:"index" json:"item_name"`
	Quantity       decimal.Decimal `gorm:"type:numeric(10,3)" json:"quantity"`
	Unit           string          `json:"unit"`
	Category       string          `gorm:"index" json:"category"`
	Location       string          `gorm:"index" json:"location"` // "pantry", "fridge", "freezer", "other"
	ExpirationDate *time.Time      `gorm:"index" json:"expiration_date,omitempty"`
	MinimumStock   decimal.Decimal `gorm:"type:numeric(10,3)" json:"minimum_stock"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`

	History []*InventoryHistory `gorm:"foreignKey:InventoryID" json:"-"`
	Timestamp
}

// InventoryHistory is append-only; a row is written for every quantity change.
type InventoryHistory struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InventoryID    uuid.UUID       `gorm:"index" json:"inventory_id"`
	ChangeType     string          `gorm:"index" json:"change_type"` // purchased, used, expired, adjusted, auto_deducted
	QuantityBefore decimal.Decimal `gorm:"type:numeric(10,3)" json:"quantity_before"`
	QuantityAfter  decimal.Decimal `gorm:"type:numeric(10,3)" json:"quantity_after"`
	Reason         string          `json:"reason,omitempty"`
	RecipeID       *uuid.UUID      `json:"recipe_id,omitempty"`
	ChangedBy      *uuid.UUID      `json:"changed_by,omitempty"`
	ChangedAt      time.Time       `gorm:"autoCreateTime;index" json:"changed_at"`

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryID" json:"-"`
}
