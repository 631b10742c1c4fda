package domain

import "errors"

var (
	MessageSuccessGetSuggestions = "success get recipe suggestions"
	MessageFailedGetSuggestions  = "failed to get recipe suggestions"

	ErrUnknownStrategy = errors.New("unknown suggestion strategy")
)

const (
	StrategyRotation           = "rotation"
	StrategyFavorites          = "favorites"
	StrategyNeverTried         = "never_tried"
	StrategyAvailableInventory = "available_inventory"
	StrategySeasonal           = "seasonal"
	StrategyQuickMeals         = "quick_meals"
)

type (
	SuggestionRequest struct {
		Strategy string `json:"strategy" validate:"required,oneof=rotation favorites never_tried available_inventory seasonal quick_meals"`
		Limit    int    `json:"limit" validate:"min=1,max=50"`
	}

	Suggestion struct {
		RecipeID        string   `json:"recipe_id"`
		Title           string   `json:"title"`
		Description     string   `json:"description,omitempty"`
		Reason          string   `json:"reason"`
		Strategy        string   `json:"strategy"`
		MatchPercent    *float64 `json:"match_percent,omitempty"`
		MatchedCount    *int     `json:"matched_count,omitempty"`
		TotalCount      *int     `json:"total_ingredients,omitempty"`
		MissingTop      []string `json:"missing_ingredients,omitempty"`
		DaysSinceCooked *int     `json:"days_since_cooked,omitempty"`
		TimesCooked     *int     `json:"times_cooked,omitempty"`
		TotalMinutes    *int     `json:"total_time_minutes,omitempty"`
	}
)
