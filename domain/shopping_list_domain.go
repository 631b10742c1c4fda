package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGenerateList  = "shopping list generated successfully"
	MessageSuccessMarkPurchased = "item marked as purchased"
	MessageFailedGenerateList   = "failed to generate shopping list"
	MessageFailedMarkPurchased  = "failed to mark item as purchased"
)

const (
	StatusNeedToBuy       = "need_to_buy"
	StatusSufficientStock = "sufficient_stock"
	StatusNotInInventory  = "not_in_inventory"
)

type (
	// ShoppingListItem reports the need for one aggregated ingredient after
	// netting against current inventory.
	ShoppingListItem struct {
		Name             string          `json:"name"`
		TotalNeeded      decimal.Decimal `json:"total_needed"`
		CurrentStock     decimal.Decimal `json:"current_stock"`
		NetNeeded        decimal.Decimal `json:"net_needed"`
		Unit             string          `json:"unit"`
		Category         string          `json:"category"`
		Status           string          `json:"status"`
		NeededForRecipes []string        `json:"needed_for_recipes"`
	}

	ShoppingListResponse struct {
		MenuPlanID  string                        `json:"menu_plan_id"`
		Groups      map[string][]ShoppingListItem `json:"groups"`
		TotalItems  int                           `json:"total_items"`
		ToBuyItems  int                           `json:"to_buy_items"`
		InStock     int                           `json:"in_stock_items"`
		GeneratedAt time.Time                     `json:"generated_at"`
	}

	MarkPurchasedRequest struct {
		ItemName string          `json:"item_name" validate:"required"`
		Quantity decimal.Decimal `json:"quantity" validate:"required"`
		Unit     string          `json:"unit"`
		Category string          `json:"category"`
	}
)
