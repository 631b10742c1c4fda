package domain

import (
	"errors"
	"os"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageFailedBodyRequest    = "failed to parse request body"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")

	// ErrConflict signals a concurrent modification detected at the storage
	// layer. It is reported to the caller, never retried internally.
	ErrConflict = errors.New("conflicting concurrent modification")
)

// EngineSettings carries the thresholds the favorites calculator and the
// suggestion engine work with. They are loaded once from config and passed
// explicitly so behavior is deterministic per call.
type EngineSettings struct {
	FavoritesThreshold    float64 `json:"favorites_threshold"`     // fraction of thumbs up required, 0..1
	FavoritesMinRaters    int     `json:"favorites_min_raters"`    // ratings required before favorite status applies
	RotationPeriodDays    int     `json:"rotation_period_days"`    // days before a recipe counts as "not recent"
	ExpirationWarningDays int     `json:"expiration_warning_days"` // days ahead for expiring-item warnings
	LowStockPercent       float64 `json:"low_stock_percent"`       // fraction of minimum stock for alerts, 0..1
	QuickMealMaxMinutes   int     `json:"quick_meal_max_minutes"`  // total-time cutoff for quick meal suggestions
}

func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		FavoritesThreshold:    0.75,
		FavoritesMinRaters:    3,
		RotationPeriodDays:    14,
		ExpirationWarningDays: 7,
		LowStockPercent:       0.20,
		QuickMealMaxMinutes:   30,
	}
}
