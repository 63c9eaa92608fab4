// Package format renders amounts and milestones as display strings.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/runway-forecast/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
// Overflowed amounts render as "$∞", "-$∞" or "NaN".
func Currency(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "NaN"
	case math.IsInf(amount, 1):
		return "$∞"
	case math.IsInf(amount, -1):
		return "-$∞"
	}

	d := Cents(amount)
	if d.IsNegative() {
		return "-$" + formatPositiveCurrency(d.Abs())
	}
	return "$" + formatPositiveCurrency(d)
}

// Cents rounds amount half away from zero to whole cents. amount must be
// finite.
func Cents(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces)
}

// JSONAmount returns a pointer to amount for JSON encoding, or nil when the
// amount is NaN or infinite so that it encodes as null.
func JSONAmount(amount float64) *float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil
	}
	return &amount
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(constants.CurrencyPlaces)
	intPart, decPart, _ := strings.Cut(formatted, ".")

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
