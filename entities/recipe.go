package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title          string     `gorm:"index" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	SourceURL      string     `json:"source_url,omitempty"`
	SourceType     string     `gorm:"default:manual" json:"source_type"` // "manual" or "scraped"
	CreatedBy      uuid.UUID  `gorm:"index" json:"created_by"`
	CurrentVersion int        `gorm:"default:1" json:"current_version"`
	IsDeleted      bool       `gorm:"index;default:false" json:"is_deleted"`
	LastCookedDate *time.Time `gorm:"index" json:"last_cooked_date,omitempty"`
	TimesCooked    int        `gorm:"default:0" json:"times_cooked"`

	Creator  *User            `gorm:"foreignKey:CreatedBy" json:"-"`
	Versions []*RecipeVersion `gorm:"foreignKey:RecipeID" json:"-"`
	Tags     []*RecipeTag     `gorm:"foreignKey:RecipeID" json:"-"`
	Timestamp
}

// RecipeVersion is an immutable snapshot of a recipe's cooking content.
// Edits never touch an existing row; they append the next version number.
type RecipeVersion struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID          uuid.UUID `gorm:"uniqueIndex:idx_recipe_version" json:"recipe_id"`
	VersionNumber     int       `gorm:"uniqueIndex:idx_recipe_version" json:"version_number"`
	PrepTimeMinutes   int       `json:"prep_time_minutes"`
	CookTimeMinutes   int       `json:"cook_time_minutes"`
	Servings          int       `json:"servings"`
	Difficulty        string    `json:"difficulty"` // "easy", "medium", "hard"
	Instructions      string    `gorm:"type:text" json:"instructions"`
	ChangeDescription string    `gorm:"type:text" json:"change_description,omitempty"`
	ModifiedBy        uuid.UUID `json:"modified_by"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`

	Recipe      *Recipe       `gorm:"foreignKey:RecipeID" json:"-"`
	Ingredients []*Ingredient `gorm:"foreignKey:RecipeVersionID" json:"ingredients,omitempty"`
}

type Ingredient struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RecipeVersionID uuid.UUID       `gorm:"index" json:"recipe_version_id"`
	Name            string          `gorm:"index" json:"name"`
	Quantity        decimal.Decimal `gorm:"type:numeric(10,3)" json:"quantity"`
	Unit            string          `json:"unit"`
	Category        string          `gorm:"index" json:"category"`
	DisplayOrder    int             `gorm:"default:0" json:"display_order"`
	IsOptional      bool            `gorm:"default:false" json:"is_optional"`

	RecipeVersion *RecipeVersion `gorm:"foreignKey:RecipeVersionID" json:"-"`
}

type RecipeTag struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"index;uniqueIndex:uq_recipe_tag" json:"recipe_id"`
	Tag       string    `gorm:"index;uniqueIndex:uq_recipe_tag" json:"tag"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}
