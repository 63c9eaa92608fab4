// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/runway-forecast/pkg/constants"
)

const (
	// AnchorDateLayout is the format accepted for explicit anchor dates.
	AnchorDateLayout = constants.AnchorDateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetMonths returns the anchor moved forward by the given number of
// calendar months. Day overflow normalizes the same way time.AddDate does,
// e.g. Jan 31 + 1 month is Mar 3 (or Mar 2 in a leap year).
func OffsetMonths(anchor time.Time, months int) time.Time {
	return anchor.AddDate(0, months, 0)
}

// LabelLayout picks the label layout for a projection of the given horizon.
func LabelLayout(horizonMonths int) string {
	if horizonMonths > constants.DayLabelMaxMonths {
		return constants.LongHorizonLabelLayout
	}
	return constants.ShortHorizonLabelLayout
}

// MonthLabel renders the label for the month at the given offset from the anchor.
func MonthLabel(anchor time.Time, offset, horizonMonths int) string {
	return OffsetMonths(anchor, offset).Format(LabelLayout(horizonMonths))
}

// ParseAnchor parses an explicit anchor date. An empty value returns now.
func ParseAnchor(value string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return now, nil
	}
	return time.ParseInLocation(AnchorDateLayout, trimmed, now.Location())
}
