// Package forecast defines the result of a single projection request and
// includes the function that computes it.
package forecast

import (
	"time"

	"github.com/iwvelando/runway-forecast/internal/projection"
	"github.com/iwvelando/runway-forecast/internal/query"
	"go.uber.org/zap"
)

// Forecast holds everything derived from one Request.
type Forecast struct {
	Title        string
	Period       projection.Period
	Months       int
	Anchor       time.Time
	Ready        bool
	Points       []projection.Point
	Milestone    projection.Milestone
	HasMilestone bool
	Warnings     []string
	ShareQuery   string
}

// GetForecast projects the request relative to anchor. A request without
// both revenue and expenses yields a Forecast with no points.
func GetForecast(logger *zap.Logger, req query.Request, anchor time.Time) Forecast {
	if logger == nil {
		logger = zap.NewNop()
	}

	in, ready := req.Input()
	result := Forecast{
		Title:      req.Title,
		Period:     req.SelectedPeriod(),
		Months:     in.HorizonMonths,
		Anchor:     anchor,
		Ready:      ready,
		Points:     []projection.Point{},
		Warnings:   req.Warnings(),
		ShareQuery: req.Encode(),
	}

	if !ready {
		logger.Debug("skipping projection because revenue or expenses are missing",
			zap.String("op", "forecast.GetForecast"),
			zap.String("revenue", req.Revenue),
			zap.String("expenses", req.Expenses),
		)
		return result
	}

	result.Points = projection.Project(in, anchor)
	result.Milestone, result.HasMilestone = projection.Classify(in, result.Points)

	logger.Debug("projection computed",
		zap.String("op", "forecast.GetForecast"),
		zap.String("period", string(result.Period)),
		zap.Int("points", len(result.Points)),
		zap.String("milestone", string(result.Milestone.Kind)),
	)

	return result
}

// Final returns the last point of the forecast.
func (f Forecast) Final() (projection.Point, bool) {
	if len(f.Points) == 0 {
		return projection.Point{}, false
	}
	return f.Points[len(f.Points)-1], true
}
