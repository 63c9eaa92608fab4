// Package query maps the shareable query-string fields of a projection onto
// projection inputs and back.
package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/iwvelando/runway-forecast/internal/projection"
	"github.com/iwvelando/runway-forecast/pkg/mathutil"
)

// Query-string keys.
const (
	KeyTitle          = "title"
	KeyStartingAmount = "startingAmount"
	KeyRevenue        = "revenue"
	KeyIncome         = "income" // legacy alias for revenue
	KeyExpenses       = "expenses"
	KeyRevenueAPR     = "revenueAPR"
	KeyExpenseAPR     = "expenseAPR"
	KeyPeriod         = "period"
)

// Request holds the raw, user-typed fields. Numeric fields stay as strings
// so a partially typed value survives a round trip unchanged.
type Request struct {
	Title          string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	StartingAmount string `json:"startingAmount,omitempty" yaml:"startingAmount,omitempty" mapstructure:"startingAmount"`
	Revenue        string `json:"revenue,omitempty" yaml:"revenue,omitempty" mapstructure:"revenue"`
	Expenses       string `json:"expenses,omitempty" yaml:"expenses,omitempty" mapstructure:"expenses"`
	RevenueAPR     string `json:"revenueAPR,omitempty" yaml:"revenueAPR,omitempty" mapstructure:"revenueAPR"`
	ExpenseAPR     string `json:"expenseAPR,omitempty" yaml:"expenseAPR,omitempty" mapstructure:"expenseAPR"`
	Period         string `json:"period,omitempty" yaml:"period,omitempty" mapstructure:"period"`
}

// FromValues reads a Request from query values. The legacy income key is
// used only when revenue is absent.
func FromValues(values url.Values) Request {
	req := Request{
		Title:          values.Get(KeyTitle),
		StartingAmount: values.Get(KeyStartingAmount),
		Revenue:        values.Get(KeyRevenue),
		Expenses:       values.Get(KeyExpenses),
		RevenueAPR:     values.Get(KeyRevenueAPR),
		ExpenseAPR:     values.Get(KeyExpenseAPR),
		Period:         values.Get(KeyPeriod),
	}
	if _, ok := values[KeyRevenue]; !ok {
		req.Revenue = values.Get(KeyIncome)
	}
	return req
}

// Parse parses a raw query string such as "revenue=5000&expenses=3000".
func Parse(rawQuery string) (Request, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Request{}, fmt.Errorf("invalid query string: %w", err)
	}
	return FromValues(values), nil
}

// Ready reports whether both monthly revenue and monthly expenses are present
// and numeric. A Request that is not ready has no projection.
func (r Request) Ready() bool {
	_, revenueOK := mathutil.ParseNumber(r.Revenue)
	_, expensesOK := mathutil.ParseNumber(r.Expenses)
	return revenueOK && expensesOK
}

// SelectedPeriod returns the requested period, or the default when the
// request names none or an unknown one.
func (r Request) SelectedPeriod() projection.Period {
	p := projection.Period(strings.TrimSpace(r.Period))
	if p.Valid() {
		return p
	}
	return projection.DefaultPeriod
}

// Warnings describes fields that were present but could not be used as given.
func (r Request) Warnings() []string {
	var warnings []string
	if p := strings.TrimSpace(r.Period); p != "" && !projection.Period(p).Valid() {
		warnings = append(warnings, fmt.Sprintf("unknown period %q, using %s", p, projection.DefaultPeriod))
	}

	fields := []struct {
		name  string
		value string
	}{
		{KeyStartingAmount, r.StartingAmount},
		{KeyRevenue, r.Revenue},
		{KeyExpenses, r.Expenses},
		{KeyRevenueAPR, r.RevenueAPR},
		{KeyExpenseAPR, r.ExpenseAPR},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		if _, ok := mathutil.ParseNumber(f.value); !ok {
			warnings = append(warnings, fmt.Sprintf("%s %q is not a number, using 0", f.name, f.value))
		}
	}
	return warnings
}

// Input converts the Request into projection parameters. Unparseable numbers
// become 0. ok is false when the Request is not Ready.
func (r Request) Input() (projection.Input, bool) {
	months, _ := r.SelectedPeriod().Months()
	in := projection.Input{
		StartingAmount:  mathutil.ParseAmount(r.StartingAmount),
		MonthlyRevenue:  mathutil.ParseAmount(r.Revenue),
		MonthlyExpenses: mathutil.ParseAmount(r.Expenses),
		RevenueAPR:      mathutil.ParseAmount(r.RevenueAPR),
		ExpenseAPR:      mathutil.ParseAmount(r.ExpenseAPR),
		HorizonMonths:   months,
	}
	return in, r.Ready()
}

// Merge returns r with every non-empty field of override applied on top.
func (r Request) Merge(override Request) Request {
	merged := r
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	pick(&merged.Title, override.Title)
	pick(&merged.StartingAmount, override.StartingAmount)
	pick(&merged.Revenue, override.Revenue)
	pick(&merged.Expenses, override.Expenses)
	pick(&merged.RevenueAPR, override.RevenueAPR)
	pick(&merged.ExpenseAPR, override.ExpenseAPR)
	pick(&merged.Period, override.Period)
	return merged
}

// Values encodes the Request as canonical share values. Empty fields are
// omitted and revenue is always written under its current key.
func (r Request) Values() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set(KeyTitle, r.Title)
	set(KeyStartingAmount, r.StartingAmount)
	set(KeyRevenue, r.Revenue)
	set(KeyExpenses, r.Expenses)
	set(KeyRevenueAPR, r.RevenueAPR)
	set(KeyExpenseAPR, r.ExpenseAPR)
	set(KeyPeriod, string(r.SelectedPeriod()))
	return values
}

// Encode returns the canonical share query string.
func (r Request) Encode() string {
	return r.Values().Encode()
}
