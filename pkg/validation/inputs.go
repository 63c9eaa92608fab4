package validation

import (
	"fmt"

	"github.com/iwvelando/runway-forecast/pkg/constants"
)

// minimumAPR is the annual rate at which the monthly rate reaches -100%.
const minimumAPR = -constants.MonthsPerYear * constants.PercentageMultiplier

// RateWarnings reports annual rates at or below -1200%, where the monthly
// growth factor is zero or negative and figures collapse or flip sign. The
// projection still computes them as given.
func RateWarnings(revenueAPR, expenseAPR float64) []string {
	var warnings []string
	if revenueAPR <= minimumAPR {
		warnings = append(warnings, fmt.Sprintf("revenue APR %.2f%% is at or below %.0f%%, monthly revenue will collapse or flip sign", revenueAPR, minimumAPR))
	}
	if expenseAPR <= minimumAPR {
		warnings = append(warnings, fmt.Sprintf("expense APR %.2f%% is at or below %.0f%%, monthly expenses will collapse or flip sign", expenseAPR, minimumAPR))
	}
	return warnings
}

// FigureWarnings reports negative base monthly figures.
func FigureWarnings(revenue, expenses float64) []string {
	var warnings []string
	if revenue < 0 {
		warnings = append(warnings, fmt.Sprintf("monthly revenue %.2f is negative", revenue))
	}
	if expenses < 0 {
		warnings = append(warnings, fmt.Sprintf("monthly expenses %.2f is negative", expenses))
	}
	return warnings
}
