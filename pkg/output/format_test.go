package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/runway-forecast/internal/forecast"
	"github.com/iwvelando/runway-forecast/internal/projection"
	"github.com/iwvelando/runway-forecast/internal/query"
	"github.com/iwvelando/runway-forecast/pkg/optimization"
	"github.com/iwvelando/runway-forecast/pkg/testutil"
	"go.uber.org/zap"
)

func runwayForecast() forecast.Forecast {
	req := query.Request{
		Title:          "Studio",
		StartingAmount: "10000",
		Revenue:        "1000",
		Expenses:       "5000",
		Period:         "3m",
	}
	return forecast.GetForecast(zap.NewNop(), req, testutil.Anchor())
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, runwayForecast())
	out := buf.String()

	for _, want := range []string{
		"--- Projection Studio (3m, 3 months) ---",
		"0 | Jan 15, 2025 | 1,000.00 | 5,000.00 | -4,000.00 | 6,000.00",
		"3 | Apr 15, 2025 | 4,000.00 | 20,000.00 | -16,000.00 | -6,000.00",
		"Final net worth: -$6,000.00",
		"Runway runs out around Mar 15, 2025.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyFormat() output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyFormatNotReady(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, forecast.GetForecast(nil, query.Request{Revenue: "100"}, testutil.Anchor()))

	out := buf.String()
	if !strings.Contains(out, "untitled") || !strings.Contains(out, "Enter monthly revenue and monthly expenses") {
		t.Errorf("PrettyFormat() placeholder missing:\n%s", out)
	}
	if strings.Contains(out, "Net worth\n") {
		t.Errorf("PrettyFormat() should not print a table without input:\n%s", out)
	}
}

func TestCsvFormat(t *testing.T) {
	records, err := csv.NewReader(strings.NewReader(CsvString(runwayForecast()))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}

	if len(records) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d", len(records))
	}
	if records[0][0] != "month" || records[0][5] != "net worth" {
		t.Errorf("unexpected header: %v", records[0])
	}

	expected := []string{"2", "Mar 15, 2025", "3000.00", "15000.00", "-12000.00", "-2000.00"}
	for i, want := range expected {
		if records[3][i] != want {
			t.Errorf("row 2 column %d = %q, expected %q", i, records[3][i], want)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, NewDocument(runwayForecast())); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}

	if doc.AsOf != testutil.AnchorDate {
		t.Errorf("AsOf = %s, expected %s", doc.AsOf, testutil.AnchorDate)
	}
	if len(doc.Points) != 4 {
		t.Fatalf("len(Points) = %d, expected 4", len(doc.Points))
	}
	if doc.Points[1].ChartExpenses != -10000 {
		t.Errorf("Points[1].ChartExpenses = %v, expected -10000", doc.Points[1].ChartExpenses)
	}
	if doc.Milestone == nil || doc.Milestone.Kind != projection.WillExhaustRunway {
		t.Errorf("Milestone = %+v, expected runway exhaustion", doc.Milestone)
	}
	if doc.Summary == "" {
		t.Errorf("expected a summary")
	}
}

func TestNewDocumentNotReady(t *testing.T) {
	doc := NewDocument(forecast.GetForecast(nil, query.Request{}, testutil.Anchor()))
	if doc.Ready || doc.Milestone != nil || len(doc.Points) != 0 {
		t.Errorf("unexpected document for empty request: %+v", doc)
	}
	if doc.Points == nil {
		t.Errorf("Points should encode as an empty list, not null")
	}
}

func TestPrettyOptimization(t *testing.T) {
	var buf bytes.Buffer
	PrettyOptimization(&buf, optimization.Summary{
		Field:           "revenue",
		Original:        1000,
		Value:           3000,
		OriginalDisplay: "$1,000.00",
		ValueDisplay:    "$3,000.00",
		MinimumCash:     0,
		Notes:           []string{"stopped early"},
	})

	out := buf.String()
	if !strings.Contains(out, "Optimized revenue: $3,000.00 (was $1,000.00), lowest net worth $0.00 against floor $0.00") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Note: stopped early") {
		t.Errorf("missing note:\n%s", out)
	}
}

func overflowForecast() forecast.Forecast {
	req := query.Request{
		Revenue:    "1000",
		Expenses:   "10",
		RevenueAPR: "1000",
		Period:     "100yr",
	}
	return forecast.GetForecast(zap.NewNop(), req, testutil.Anchor())
}

func TestOverflowedAmounts(t *testing.T) {
	result := overflowForecast()
	final, ok := result.Final()
	if !ok || !math.IsInf(final.NetWorth, 1) {
		t.Fatalf("expected final net worth to overflow, got %v", final.NetWorth)
	}

	var pretty bytes.Buffer
	PrettyFormat(&pretty, result)
	if !strings.Contains(pretty.String(), "Final net worth: $∞") {
		t.Errorf("unexpected pretty output tail:\n%s", pretty.String()[max(0, pretty.Len()-200):])
	}

	var csvBuf bytes.Buffer
	if err := CsvFormat(&csvBuf, result); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}
	records, err := csv.NewReader(&csvBuf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if got := records[len(records)-1][5]; got != "+Inf" {
		t.Errorf("final net worth cell = %s, expected +Inf", got)
	}

	var jsonBuf bytes.Buffer
	if err := JSONFormat(&jsonBuf, NewDocument(result)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}
	var raw struct {
		Points []map[string]interface{} `json:"points"`
	}
	if err := json.Unmarshal(jsonBuf.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	last := raw.Points[len(raw.Points)-1]
	if v, ok := last["netWorth"]; !ok || v != nil {
		t.Errorf("expected null netWorth, got %v (present %v)", v, ok)
	}
	if v := last["cumulativeExpenses"]; v == nil {
		t.Errorf("expected finite cumulativeExpenses to stay numeric")
	}
}
