package forecast

import (
	"testing"

	"github.com/iwvelando/runway-forecast/internal/projection"
	"github.com/iwvelando/runway-forecast/internal/query"
	"github.com/iwvelando/runway-forecast/pkg/testutil"
	"go.uber.org/zap"
)

func TestGetForecastMissingRevenue(t *testing.T) {
	result := GetForecast(zap.NewNop(), query.Request{Expenses: "3000"}, testutil.Anchor())

	if result.Ready {
		t.Errorf("Ready = true, expected false")
	}
	if len(result.Points) != 0 {
		t.Errorf("len(Points) = %d, expected 0", len(result.Points))
	}
	if result.HasMilestone {
		t.Errorf("HasMilestone = true, expected false")
	}
	if _, ok := result.Final(); ok {
		t.Errorf("Final() ok = true for empty forecast")
	}
}

func TestGetForecastRunway(t *testing.T) {
	req := query.Request{
		Title:          "Cafe",
		StartingAmount: "10000",
		Revenue:        "1000",
		Expenses:       "5000",
		Period:         "1yr",
	}

	result := GetForecast(nil, req, testutil.Anchor())

	if !result.Ready {
		t.Fatalf("Ready = false, expected true")
	}
	if result.Title != "Cafe" || result.Period != projection.Period1Year || result.Months != 12 {
		t.Errorf("unexpected metadata: %+v", result)
	}
	if len(result.Points) != 13 {
		t.Fatalf("len(Points) = %d, expected 13", len(result.Points))
	}
	for i := 1; i < len(result.Points); i++ {
		delta := result.Points[i-1].NetWorth - result.Points[i].NetWorth
		if delta != 4000 {
			t.Errorf("net worth change at month %d = %v, expected 4000", i, delta)
		}
	}

	if !result.HasMilestone {
		t.Fatalf("HasMilestone = false")
	}
	m := result.Milestone
	if m.Kind != projection.WillExhaustRunway || !m.Found || m.Month != 2 {
		t.Errorf("Milestone = %+v, expected runway exhausted at month 2", m)
	}

	final, ok := result.Final()
	if !ok || final.Month != 12 {
		t.Errorf("Final() = %+v/%v, expected month 12", final, ok)
	}
}

func TestGetForecastDefaultsPeriodAndWarns(t *testing.T) {
	result := GetForecast(zap.NewNop(), query.Request{Revenue: "100", Expenses: "50", Period: "eternity"}, testutil.Anchor())

	if result.Period != projection.DefaultPeriod {
		t.Errorf("Period = %s, expected %s", result.Period, projection.DefaultPeriod)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Warnings = %v, expected one warning", result.Warnings)
	}
	if result.ShareQuery != "expenses=50&period=1yr&revenue=100" {
		t.Errorf("ShareQuery = %q", result.ShareQuery)
	}
	if result.Milestone.Kind != projection.AlreadyPositive {
		t.Errorf("Milestone.Kind = %s, expected %s", result.Milestone.Kind, projection.AlreadyPositive)
	}
}
