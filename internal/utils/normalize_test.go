package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "milk", NormalizeName("  Milk "))
	assert.Equal(t, "olive oil", NormalizeName("Olive Oil"))
	assert.Equal(t, "", NormalizeName("   "))
	assert.Equal(t, NormalizeName("MILK"), NormalizeName("milk"))
}

func TestCurrentSeason(t *testing.T) {
	cases := []struct {
		month  time.Month
		season string
	}{
		{time.January, "winter"},
		{time.February, "winter"},
		{time.March, "spring"},
		{time.May, "spring"},
		{time.June, "summer"},
		{time.August, "summer"},
		{time.September, "fall"},
		{time.November, "fall"},
		{time.December, "winter"},
	}

	for _, c := range cases {
		now := time.Date(2025, c.month, 15, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, c.season, CurrentSeason(now), "month %s", c.month)
	}
}
