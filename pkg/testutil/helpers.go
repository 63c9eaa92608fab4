// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"
	"time"
)

// AnchorDate is the fixed "today" used by tests that render month labels.
const AnchorDate = "2025-01-15"

// Anchor returns AnchorDate as a UTC time.
func Anchor() time.Time {
	return time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
}

// AssertClose fails the test when got and want differ by more than tolerance.
func AssertClose(t testing.TB, name string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, expected %v (tolerance %v)", name, got, want, tolerance)
	}
}
