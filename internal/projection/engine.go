// Package projection computes month-by-month compound cash projections and
// the break-even or runway milestone derived from them.
package projection

import (
	"time"

	"github.com/iwvelando/runway-forecast/pkg/datetime"
	"github.com/iwvelando/runway-forecast/pkg/mathutil"
)

// Input is one snapshot of the parsed projection parameters.
type Input struct {
	StartingAmount  float64
	MonthlyRevenue  float64
	MonthlyExpenses float64
	RevenueAPR      float64 // annual percent, e.g. 5 for 5%
	ExpenseAPR      float64
	HorizonMonths   int
}

// Point is the state of the projection at the end of one month.
type Point struct {
	Month              int     `json:"month"`
	Label              string  `json:"label"`
	CumulativeRevenue  float64 `json:"cumulativeRevenue"`
	CumulativeExpenses float64 `json:"cumulativeExpenses"`
	Profit             float64 `json:"profit"`
	NetWorth           float64 `json:"netWorth"`
}

// ChartExpenses returns cumulative expenses negated for below-axis plotting.
func (p Point) ChartExpenses() float64 {
	return -p.CumulativeExpenses
}

// Project returns one Point per month from 0 through in.HorizonMonths
// inclusive, labelled relative to anchor. Month 0 already includes one month
// of revenue and expenses at the base figures; growth compounds from month 1.
// A negative horizon yields an empty series.
func Project(in Input, anchor time.Time) []Point {
	if in.HorizonMonths < 0 {
		return []Point{}
	}

	revenueRate := mathutil.MonthlyRate(in.RevenueAPR)
	expenseRate := mathutil.MonthlyRate(in.ExpenseAPR)

	points := make([]Point, 0, in.HorizonMonths+1)
	var cumRevenue, cumExpenses float64
	curRevenue := in.MonthlyRevenue
	curExpenses := in.MonthlyExpenses

	for month := 0; month <= in.HorizonMonths; month++ {
		if month > 0 {
			curRevenue *= 1 + revenueRate
			curExpenses *= 1 + expenseRate
		}
		cumRevenue += curRevenue
		cumExpenses += curExpenses

		profit := cumRevenue - cumExpenses
		points = append(points, Point{
			Month:              month,
			Label:              datetime.MonthLabel(anchor, month, in.HorizonMonths),
			CumulativeRevenue:  cumRevenue,
			CumulativeExpenses: cumExpenses,
			Profit:             profit,
			NetWorth:           in.StartingAmount + profit,
		})
	}

	return points
}
