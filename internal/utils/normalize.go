package utils

import (
	"strings"
	"time"
)

// NormalizeName folds case and trims whitespace. The suggestion engine and
// the shopping list aggregator both match recipe-ingredient names against
// inventory-item names through this one function.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CurrentSeason maps a month to a calendar season. Server-local time is the
// reference; the seasonal tag match is not timezone-sensitive enough to
// justify carrying an explicit zone through every call.
func CurrentSeason(now time.Time) string {
	switch now.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "fall"
	default:
		return "winter"
	}
}
