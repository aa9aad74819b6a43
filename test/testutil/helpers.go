// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/timeutil"
)

// Today is the fixed "now" integration tests run at; SearchDate is the day after.
const (
	Today      = "2026-10-18"
	SearchDate = "2026-10-19"
)

// Clock returns a mock clock set to 09:00 UTC on Today.
func Clock() *timeutil.MockClock {
	return timeutil.NewMockClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
}

// SearchParams returns valid CMB to DXB params for SearchDate.
func SearchParams() domain.SearchParams {
	return domain.SearchParams{
		Origin:        "CMB",
		Destination:   "DXB",
		DepartureDate: SearchDate,
		Passengers:    1,
		Class:         domain.ClassEconomy,
	}
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}
