// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/runway-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Optimizer results are snapped to whole cents with it.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// MonthlyRate converts an annual percentage rate into a monthly decimal rate.
func MonthlyRate(apr float64) float64 {
	return apr / constants.MonthsPerYear / constants.PercentageMultiplier
}

// ParseNumber parses a user-typed numeric field. Surrounding whitespace,
// thousands separators and a leading dollar sign are ignored. ok is false for
// blank, malformed or non-finite input.
func ParseNumber(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if strings.HasPrefix(cleaned, "-$") {
		cleaned = "-" + cleaned[2:]
	}
	cleaned = strings.TrimPrefix(cleaned, "$")
	if cleaned == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseAmount parses a numeric field and degrades to 0 when it cannot.
func ParseAmount(value string) float64 {
	n, _ := ParseNumber(value)
	return n
}
