package entities

import (
	"github.com/google/uuid"
)

// Rating is one user's thumbs up/down on a recipe. Votes are kept per user,
// never averaged; (recipe_id, user_id) is unique.
type Rating struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID      uuid.UUID `gorm:"index;uniqueIndex:uq_recipe_user_rating" json:"recipe_id"`
	UserID        uuid.UUID `gorm:"index;uniqueIndex:uq_recipe_user_rating" json:"user_id"`
	Rating        bool      `gorm:"index" json:"rating"` // true = thumbs up
	Feedback      string    `gorm:"type:text" json:"feedback,omitempty"`
	Modifications string    `gorm:"type:text" json:"modifications,omitempty"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
