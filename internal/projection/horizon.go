package projection

import "github.com/iwvelando/runway-forecast/pkg/constants"

// Period is a selectable projection horizon key such as "1yr".
type Period string

// Horizon keys offered to users.
const (
	Period3Months  Period = "3m"
	Period6Months  Period = "6m"
	Period1Year    Period = "1yr"
	Period3Years   Period = "3yr"
	Period5Years   Period = "5yr"
	Period10Years  Period = "10yr"
	Period25Years  Period = "25yr"
	Period50Years  Period = "50yr"
	Period100Years Period = "100yr"
)

// DefaultPeriod is selected when no valid period is given.
const DefaultPeriod = Period(constants.DefaultPeriod)

// HorizonOption pairs a period key with the number of months it covers.
type HorizonOption struct {
	Period Period `json:"period" yaml:"period"`
	Months int    `json:"months" yaml:"months"`
}

var horizons = []HorizonOption{
	{Period3Months, 3},
	{Period6Months, 6},
	{Period1Year, 12},
	{Period3Years, 36},
	{Period5Years, 60},
	{Period10Years, 120},
	{Period25Years, 300},
	{Period50Years, 600},
	{Period100Years, 1200},
}

// Horizons returns the selectable horizons in ascending order.
func Horizons() []HorizonOption {
	out := make([]HorizonOption, len(horizons))
	copy(out, horizons)
	return out
}

// Months returns the number of months the period covers.
func (p Period) Months() (int, bool) {
	for _, h := range horizons {
		if h.Period == p {
			return h.Months, true
		}
	}
	return 0, false
}

// Valid reports whether p is one of the selectable horizons.
func (p Period) Valid() bool {
	_, ok := p.Months()
	return ok
}
