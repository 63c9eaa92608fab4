// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/iwvelando/runway-forecast/internal/forecast"
	"github.com/iwvelando/runway-forecast/internal/projection"
	"github.com/iwvelando/runway-forecast/pkg/constants"
	"github.com/iwvelando/runway-forecast/pkg/format"
	"github.com/iwvelando/runway-forecast/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Document is the serialized form of a Forecast.
type Document struct {
	Title      string                `json:"title,omitempty"`
	Period     projection.Period     `json:"period"`
	Months     int                   `json:"months"`
	AsOf       string                `json:"asOf"`
	Ready      bool                  `json:"ready"`
	Points     []Point               `json:"points"`
	Milestone  *projection.Milestone `json:"milestone,omitempty"`
	Summary    string                `json:"summary,omitempty"`
	ShareQuery string                `json:"shareQuery"`
	Warnings   []string              `json:"warnings,omitempty"`

	Optimization *optimization.Summary `json:"optimization,omitempty"`
}

// Point is a projection point with the negated expense series used for
// below-axis charting.
type Point struct {
	projection.Point
	ChartExpenses float64 `json:"chartExpenses"`
}

// MarshalJSON encodes overflowed amounts as null.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Month              int      `json:"month"`
		Label              string   `json:"label"`
		CumulativeRevenue  *float64 `json:"cumulativeRevenue"`
		CumulativeExpenses *float64 `json:"cumulativeExpenses"`
		Profit             *float64 `json:"profit"`
		NetWorth           *float64 `json:"netWorth"`
		ChartExpenses      *float64 `json:"chartExpenses"`
	}{
		Month:              p.Month,
		Label:              p.Label,
		CumulativeRevenue:  format.JSONAmount(p.CumulativeRevenue),
		CumulativeExpenses: format.JSONAmount(p.CumulativeExpenses),
		Profit:             format.JSONAmount(p.Profit),
		NetWorth:           format.JSONAmount(p.NetWorth),
		ChartExpenses:      format.JSONAmount(p.ChartExpenses),
	})
}

// NewDocument converts a Forecast into its serialized form.
func NewDocument(result forecast.Forecast) Document {
	doc := Document{
		Title:      result.Title,
		Period:     result.Period,
		Months:     result.Months,
		AsOf:       result.Anchor.Format(constants.AnchorDateLayout),
		Ready:      result.Ready,
		Points:     make([]Point, 0, len(result.Points)),
		ShareQuery: result.ShareQuery,
		Warnings:   result.Warnings,
	}
	for _, p := range result.Points {
		doc.Points = append(doc.Points, Point{Point: p, ChartExpenses: p.ChartExpenses()})
	}
	if result.HasMilestone {
		m := result.Milestone
		doc.Milestone = &m
		doc.Summary = format.Milestone(m)
	}
	return doc
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result forecast.Forecast) {
	p := message.NewPrinter(language.English)

	title := result.Title
	if title == "" {
		title = "untitled"
	}
	fmt.Fprintf(w, "--- Projection %s (%s, %d months) ---\n", title, result.Period, result.Months)

	if !result.Ready {
		fmt.Fprintf(w, "Enter monthly revenue and monthly expenses to see a projection.\n")
		return
	}

	fmt.Fprintf(w, "Month | Date | Revenue | Expenses | Profit | Net worth\n")
	fmt.Fprintf(w, "_____ | ____ | _______ | ________ | ______ | _________\n")
	for _, point := range result.Points {
		fmt.Fprintf(w, "%d | %s | %s | %s | %s | %s\n",
			point.Month, point.Label,
			localized(p, point.CumulativeRevenue), localized(p, point.CumulativeExpenses),
			localized(p, point.Profit), localized(p, point.NetWorth))
	}

	if final, ok := result.Final(); ok {
		fmt.Fprintf(w, "\nFinal net worth: %s\n", format.Currency(final.NetWorth))
	}
	if result.HasMilestone {
		fmt.Fprintf(w, "%s\n", format.Milestone(result.Milestone))
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, result forecast.Forecast) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "date", "cumulative revenue", "cumulative expenses", "profit", "net worth"}); err != nil {
		return err
	}
	for _, point := range result.Points {
		record := []string{
			strconv.Itoa(point.Month),
			point.Label,
			amount(point.CumulativeRevenue),
			amount(point.CumulativeExpenses),
			amount(point.Profit),
			amount(point.NetWorth),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of the forecast.
func CsvString(result forecast.Forecast) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, result); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat outputs a Document as indented JSON.
func JSONFormat(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// PrettyOptimization outputs an optimizer summary below a pretty table.
func PrettyOptimization(w io.Writer, summary optimization.Summary) {
	fmt.Fprintf(w, "\nOptimized %s: %s (was %s), lowest net worth %s against floor %s\n",
		summary.Field, summary.ValueDisplay, summary.OriginalDisplay,
		format.Currency(summary.MinimumCash), format.Currency(summary.Floor))
	for _, note := range summary.Notes {
		fmt.Fprintf(w, "Note: %s\n", note)
	}
}

// localized renders v with two decimals and thousands separators.
func localized(p *message.Printer, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return amount(v)
	}
	return p.Sprintf("%.2f", v)
}

// amount renders v with two decimals. Overflowed values render as +Inf,
// -Inf or NaN.
func amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', constants.CurrencyPlaces, 64)
	}
	return format.Cents(v).StringFixed(constants.CurrencyPlaces)
}
