package entities

import (
	"time"

	"github.com/google/uuid"
)

type MenuPlan struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WeekStartDate time.Time `gorm:"index" json:"week_start_date"` // always a Monday
	Name          string    `json:"name,omitempty"`
	CreatedBy     uuid.UUID `gorm:"index" json:"created_by"`
	IsActive      bool      `gorm:"index;default:true" json:"is_active"`

	Meals []*PlannedMeal `gorm:"foreignKey:MenuPlanID" json:"meals,omitempty"`
	Timestamp
}

type PlannedMeal struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	MenuPlanID      uuid.UUID  `gorm:"index" json:"menu_plan_id"`
	RecipeID        uuid.UUID  `gorm:"index" json:"recipe_id"`
	MealDate        time.Time  `gorm:"index" json:"meal_date"`
	MealType        string     `json:"meal_type"` // breakfast, lunch, dinner, snack
	ServingsPlanned int        `json:"servings_planned"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	Cooked          bool       `gorm:"index;default:false" json:"cooked"`
	CookedDate      *time.Time `json:"cooked_date,omitempty"`
	CookedBy        *uuid.UUID `json:"cooked_by,omitempty"`

	MenuPlan *MenuPlan `gorm:"foreignKey:MenuPlanID" json:"-"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID" json:"-"`
}
