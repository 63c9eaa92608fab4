// Package optimizer goal-seeks a single monthly figure so that net worth
// never drops below a floor during the projection horizon.
package optimizer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iwvelando/runway-forecast/internal/projection"
	"github.com/iwvelando/runway-forecast/internal/query"
	"github.com/iwvelando/runway-forecast/pkg/format"
	"github.com/iwvelando/runway-forecast/pkg/mathutil"
	"github.com/iwvelando/runway-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// Field names a monthly figure the optimizer may adjust.
type Field string

// Adjustable fields.
const (
	// FieldRevenue seeks the lowest monthly revenue that holds the floor.
	FieldRevenue Field = "revenue"
	// FieldExpenses seeks the highest monthly expenses that hold the floor.
	FieldExpenses Field = "expenses"
)

const (
	defaultTolerance     = 0.01
	defaultMaxIterations = 100
	maxExpansions        = 64
	maxCentSteps         = 2
)

// ParseField maps a user-supplied field name onto a Field.
func ParseField(value string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(value))) {
	case FieldRevenue, "income":
		return FieldRevenue, nil
	case FieldExpenses:
		return FieldExpenses, nil
	}
	return "", fmt.Errorf("unsupported optimizer field %q, expected %s or %s", value, FieldRevenue, FieldExpenses)
}

// Directive configures one goal-seek.
type Directive struct {
	Field         Field
	Floor         float64
	Tolerance     float64
	MaxIterations int
}

func (d Directive) withDefaults() Directive {
	if d.Tolerance <= 0 {
		d.Tolerance = defaultTolerance
	}
	if d.MaxIterations <= 0 {
		d.MaxIterations = defaultMaxIterations
	}
	return d
}

// Runner evaluates projections at candidate values.
type Runner struct {
	logger *zap.Logger
	anchor time.Time
}

type evaluation struct {
	value   float64
	minCash float64
	floor   float64
}

func (e evaluation) feasible() bool {
	return e.minCash >= e.floor
}

func (e evaluation) headroom() float64 {
	return e.minCash - e.floor
}

// NewRunner constructs a Runner that labels projections relative to anchor.
func NewRunner(logger *zap.Logger, anchor time.Time) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, anchor: anchor}
}

// Run seeks the field value named by d for the request. The request must
// carry both revenue and expenses.
func (r *Runner) Run(req query.Request, d Directive) (optimization.Summary, error) {
	in, ready := req.Input()
	if !ready {
		return optimization.Summary{}, fmt.Errorf("optimizer requires both revenue and expenses")
	}
	if d.Field != FieldRevenue && d.Field != FieldExpenses {
		return optimization.Summary{}, fmt.Errorf("unsupported optimizer field %q", d.Field)
	}
	d = d.withDefaults()

	original := in.MonthlyRevenue
	if d.Field == FieldExpenses {
		original = in.MonthlyExpenses
	}

	summary := r.seek(in, d, original, d.Field == FieldRevenue)

	r.logger.Info("optimizer adjusted field",
		zap.String("op", "optimizer.Run"),
		zap.String("field", summary.Field),
		zap.Float64("original", summary.Original),
		zap.Float64("optimized", summary.Value),
		zap.Float64("floor", summary.Floor),
		zap.Float64("minCash", summary.MinimumCash),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)

	return summary, nil
}

// seek bisects between an infeasible and a feasible value. When raising is
// true larger values help (revenue) and the lowest feasible value wins;
// otherwise smaller values help (expenses) and the highest feasible value wins.
func (r *Runner) seek(in projection.Input, d Directive, original float64, raising bool) optimization.Summary {
	summary := optimization.Summary{
		Field:           string(d.Field),
		Original:        original,
		Floor:           d.Floor,
		OriginalDisplay: format.Currency(original),
	}

	zero := r.evaluate(in, d, 0)
	start := math.Max(original, 1)

	var good, bad evaluation
	if raising {
		if zero.feasible() {
			return r.finish(summary, zero, 0, nil)
		}
		bad = zero
		good = r.evaluate(in, d, start)
		for i := 0; !good.feasible() && i < maxExpansions; i++ {
			bad = good
			good = r.evaluate(in, d, good.value*2)
		}
		if !good.feasible() {
			return r.finish(summary, good, 0, []string{fmt.Sprintf("unable to hold net worth at %s with any tested revenue", format.Currency(d.Floor))})
		}
	} else {
		if !zero.feasible() {
			return r.finish(summary, zero, 0, []string{fmt.Sprintf("net worth falls below %s even with zero expenses", format.Currency(d.Floor))})
		}
		good = zero
		bad = r.evaluate(in, d, start)
		for i := 0; bad.feasible() && i < maxExpansions; i++ {
			good = bad
			bad = r.evaluate(in, d, bad.value*2)
		}
		if bad.feasible() {
			return r.finish(summary, bad, 0, []string{"every tested expense level holds the floor"})
		}
	}

	iterations := 0
	for iterations < d.MaxIterations && !mathutil.WithinTolerance(good.value, bad.value, d.Tolerance) {
		mid := r.evaluate(in, d, bad.value+(good.value-bad.value)/2)
		iterations++
		if mid.feasible() {
			good = mid
		} else {
			bad = mid
		}
	}

	var notes []string
	if !mathutil.WithinTolerance(good.value, bad.value, d.Tolerance) {
		notes = append(notes, fmt.Sprintf("stopped after %d iterations before reaching tolerance %.2f", iterations, d.Tolerance))
	}

	final := r.snapToCents(in, d, good, raising)
	if !final.feasible() {
		notes = append(notes, fmt.Sprintf("no whole-cent value near %.4f holds the floor", good.value))
	}
	return r.finish(summary, final, iterations, notes)
}

// snapToCents rounds a feasible value to whole cents, stepping one cent at a
// time toward the feasible side when rounding crossed the boundary.
func (r *Runner) snapToCents(in projection.Input, d Directive, good evaluation, raising bool) evaluation {
	step := -0.01
	if raising {
		step = 0.01
	}

	snapped := r.evaluate(in, d, mathutil.Round(good.value))
	for i := 0; !snapped.feasible() && i < maxCentSteps; i++ {
		snapped = r.evaluate(in, d, mathutil.Round(snapped.value+step))
	}
	return snapped
}

func (r *Runner) finish(summary optimization.Summary, eval evaluation, iterations int, notes []string) optimization.Summary {
	summary.Value = eval.value
	summary.ValueDisplay = format.Currency(eval.value)
	summary.MinimumCash = eval.minCash
	summary.Headroom = eval.headroom()
	summary.Iterations = iterations
	summary.Converged = eval.feasible() && len(notes) == 0
	summary.Notes = notes
	return summary
}

func (r *Runner) evaluate(in projection.Input, d Directive, value float64) evaluation {
	if d.Field == FieldRevenue {
		in.MonthlyRevenue = value
	} else {
		in.MonthlyExpenses = value
	}

	series := projection.Project(in, r.anchor)
	minCash := in.StartingAmount
	for i, p := range series {
		if i == 0 || p.NetWorth < minCash {
			minCash = p.NetWorth
		}
	}

	r.logger.Debug("optimizer evaluation",
		zap.String("op", "optimizer.evaluate"),
		zap.String("field", string(d.Field)),
		zap.Float64("value", value),
		zap.Float64("minCash", minCash),
	)

	return evaluation{value: value, minCash: minCash, floor: d.Floor}
}
