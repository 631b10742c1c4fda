package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreatePlan   = "menu plan created successfully"
	MessageSuccessGetPlans     = "success get menu plans"
	MessageSuccessUpdatePlan   = "menu plan updated successfully"
	MessageSuccessDeletePlan   = "menu plan deleted successfully"
	MessageSuccessAddMeal      = "meal added to plan successfully"
	MessageSuccessRemoveMeal   = "meal removed from plan successfully"
	MessageSuccessMarkCooked   = "meal marked as cooked successfully"
	MessageFailedCreatePlan    = "failed to create menu plan"
	MessageFailedGetPlans      = "failed to get menu plans"
	MessageFailedUpdatePlan    = "failed to update menu plan"
	MessageFailedDeletePlan    = "failed to delete menu plan"
	MessageFailedAddMeal       = "failed to add meal to plan"
	MessageFailedRemoveMeal    = "failed to remove meal from plan"
	MessageFailedMarkCooked    = "failed to mark meal as cooked"

	ErrMenuPlanNotFound   = errors.New("menu plan not found")
	ErrPlannedMealNotFound = errors.New("planned meal not found")
	ErrWeekStartNotMonday = errors.New("week start date must be a Monday")
	ErrInvalidMealType    = errors.New("meal type must be breakfast, lunch, dinner or snack")
)

type (
	PlannedMealInput struct {
		RecipeID        string `json:"recipe_id" validate:"required,uuid"`
		MealDate        string `json:"meal_date" validate:"required,datetime=2006-01-02"`
		MealType        string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
		ServingsPlanned int    `json:"servings_planned" validate:"required,min=1"`
		Notes           string `json:"notes"`
	}

	CreateMenuPlanRequest struct {
		WeekStartDate string             `json:"week_start_date" validate:"required,datetime=2006-01-02"`
		Name          string             `json:"name"`
		Meals         []PlannedMealInput `json:"meals" validate:"dive"`
	}

	UpdateMenuPlanRequest struct {
		Name     *string            `json:"name"`
		IsActive *bool              `json:"is_active"`
		Meals    []PlannedMealInput `json:"meals" validate:"omitempty,dive"`
	}

	PlannedMealResponse struct {
		ID              string     `json:"id"`
		RecipeID        string     `json:"recipe_id"`
		RecipeTitle     string     `json:"recipe_title"`
		MealDate        string     `json:"meal_date"`
		MealType        string     `json:"meal_type"`
		ServingsPlanned int        `json:"servings_planned"`
		Notes           string     `json:"notes,omitempty"`
		Cooked          bool       `json:"cooked"`
		CookedDate      *time.Time `json:"cooked_date,omitempty"`
	}

	MenuPlanResponse struct {
		ID            string                `json:"id"`
		WeekStartDate string                `json:"week_start_date"`
		Name          string                `json:"name,omitempty"`
		IsActive      bool                  `json:"is_active"`
		Meals         []PlannedMealResponse `json:"meals"`
	}

	InventoryChange struct {
		ItemName         string          `json:"item_name"`
		QuantityDeducted decimal.Decimal `json:"quantity_deducted"`
	}

	MarkCookedResponse struct {
		Meal             PlannedMealResponse `json:"meal"`
		InventoryUpdated bool                `json:"inventory_updated"`
		InventoryChanges []InventoryChange   `json:"inventory_changes"`
	}
)
