package entities

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"index" json:"user_id"`
	Type      string    `gorm:"index" json:"type"` // low_stock, expiring, meal_reminder
	Title     string    `json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `gorm:"index;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
