package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetNotifications = "success get notifications"
	MessageSuccessMarkRead         = "notification marked as read"
	MessageSuccessDeleteNotif      = "notification deleted successfully"
	MessageFailedGetNotifications  = "failed to get notifications"
	MessageFailedMarkRead          = "failed to mark notification as read"
	MessageFailedDeleteNotif       = "failed to delete notification"

	ErrNotificationNotFound = errors.New("notification not found")
)

const (
	NotificationLowStock     = "low_stock"
	NotificationExpiring     = "expiring"
	NotificationMealReminder = "meal_reminder"
)

type (
	NotificationResponse struct {
		ID        string    `json:"id"`
		Type      string    `json:"type"`
		Title     string    `json:"title"`
		Message   string    `json:"message"`
		Link      string    `json:"link,omitempty"`
		IsRead    bool      `json:"is_read"`
		CreatedAt time.Time `json:"created_at"`
	}

	UnreadCountResponse struct {
		UnreadCount int64 `json:"unread_count"`
	}
)
