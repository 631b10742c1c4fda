package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetRecipes     = "success get recipes"
	MessageSuccessGetRecipe      = "success get recipe detail"
	MessageSuccessCreateRecipe   = "recipe created successfully"
	MessageSuccessUpdateRecipe   = "recipe updated successfully"
	MessageSuccessDeleteRecipe   = "recipe deleted successfully"
	MessageSuccessGetVersions    = "success get recipe versions"
	MessageSuccessRevertVersion  = "recipe reverted successfully"
	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipe       = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedGetVersions     = "failed to get recipe versions"
	MessageFailedRevertVersion   = "failed to revert recipe version"

	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrRecipeVersionNotFound = errors.New("recipe version not found")
	ErrNoIngredients         = errors.New("recipe needs at least one ingredient")
	ErrNoInstructions        = errors.New("recipe needs instructions")
	ErrInvalidServings       = errors.New("servings must be positive")
	ErrInvalidTimeMinutes    = errors.New("prep and cook minutes must not be negative")
	ErrInvalidDifficulty     = errors.New("difficulty must be easy, medium or hard")
)

type (
	IngredientInput struct {
		Name       string          `json:"name" validate:"required"`
		Quantity   decimal.Decimal `json:"quantity" validate:"required"`
		Unit       string          `json:"unit"`
		Category   string          `json:"category"`
		IsOptional bool            `json:"is_optional"`
	}

	CreateRecipeRequest struct {
		Title           string            `json:"title" validate:"required,max=255"`
		Description     string            `json:"description"`
		SourceURL       string            `json:"source_url" validate:"omitempty,url"`
		Servings        int               `json:"servings" validate:"required,min=1"`
		PrepTimeMinutes int               `json:"prep_time_minutes" validate:"min=0"`
		CookTimeMinutes int               `json:"cook_time_minutes" validate:"min=0"`
		Difficulty      string            `json:"difficulty" validate:"required,oneof=easy medium hard"`
		Instructions    string            `json:"instructions" validate:"required"`
		Ingredients     []IngredientInput `json:"ingredients" validate:"required,min=1,dive"`
		Tags            []string          `json:"tags"`
	}

	UpdateRecipeRequest struct {
		Title             string            `json:"title" validate:"required,max=255"`
		Description       string            `json:"description"`
		Servings          int               `json:"servings" validate:"required,min=1"`
		PrepTimeMinutes   int               `json:"prep_time_minutes" validate:"min=0"`
		CookTimeMinutes   int               `json:"cook_time_minutes" validate:"min=0"`
		Difficulty        string            `json:"difficulty" validate:"required,oneof=easy medium hard"`
		Instructions      string            `json:"instructions" validate:"required"`
		ChangeDescription string            `json:"change_description"`
		Ingredients       []IngredientInput `json:"ingredients" validate:"required,min=1,dive"`
		Tags              []string          `json:"tags"`
	}

	RevertVersionRequest struct {
		TargetVersion int `json:"target_version" validate:"required,min=1"`
	}

	ListRecipesRequest struct {
		Search     string
		Tag        string
		Difficulty string
		Filter     string // favorites, not_recent, never_tried
		Page       int
		Limit      int
	}

	IngredientResponse struct {
		Name       string          `json:"name"`
		Quantity   decimal.Decimal `json:"quantity"`
		Unit       string          `json:"unit"`
		Category   string          `json:"category"`
		IsOptional bool            `json:"is_optional"`
	}

	RecipeResponse struct {
		ID              string               `json:"id"`
		Title           string               `json:"title"`
		Description     string               `json:"description"`
		CurrentVersion  int                  `json:"current_version"`
		Servings        int                  `json:"servings"`
		PrepTimeMinutes int                  `json:"prep_time_minutes"`
		CookTimeMinutes int                  `json:"cook_time_minutes"`
		TotalMinutes    int                  `json:"total_minutes"`
		Difficulty      string               `json:"difficulty"`
		Instructions    string               `json:"instructions"`
		Ingredients     []IngredientResponse `json:"ingredients"`
		Tags            []string             `json:"tags"`
		TimesCooked     int                  `json:"times_cooked"`
		LastCookedDate  *time.Time           `json:"last_cooked_date,omitempty"`
		CreatedAt       time.Time            `json:"created_at"`
	}

	RecipeVersionResponse struct {
		VersionNumber     int                  `json:"version_number"`
		Servings          int                  `json:"servings"`
		PrepTimeMinutes   int                  `json:"prep_time_minutes"`
		CookTimeMinutes   int                  `json:"cook_time_minutes"`
		Difficulty        string               `json:"difficulty"`
		Instructions      string               `json:"instructions"`
		ChangeDescription string               `json:"change_description,omitempty"`
		Ingredients       []IngredientResponse `json:"ingredients"`
		CreatedAt         time.Time            `json:"created_at"`
	}
)
