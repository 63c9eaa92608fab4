package mathutil

import (
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Positive number", 123.456, 123.46},
		{"Negative number", -123.456, -123.46},
		{"Already rounded", 100.00, 100.00},
		{"Half rounds away from zero", 0.125, 0.13},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.input); got != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		a, b, tolerance float64
		expected        bool
	}{
		{100, 100.005, 0.01, true},
		{100, 100.01, 0.01, true},
		{100, 100.02, 0.01, false},
		{-5, 5, 1, false},
	}

	for _, tt := range tests {
		if got := WithinTolerance(tt.a, tt.b, tt.tolerance); got != tt.expected {
			t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tolerance, got, tt.expected)
		}
	}
}

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		name     string
		apr      float64
		expected float64
	}{
		{"Zero rate", 0, 0},
		{"Twelve percent", 12, 0.01},
		{"Negative rate", -6, -0.005},
		{"Minus twelve hundred", -1200, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyRate(tt.apr); !WithinTolerance(got, tt.expected, 1e-12) {
				t.Errorf("MonthlyRate(%v) = %v, expected %v", tt.apr, got, tt.expected)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"Plain integer", "5000", 5000, true},
		{"Decimal", "12.5", 12.5, true},
		{"Negative", "-250", -250, true},
		{"Whitespace", "  42 ", 42, true},
		{"Thousands separators", "1,234,567.89", 1234567.89, true},
		{"Dollar sign", "$1,000", 1000, true},
		{"Negative dollar sign", "-$75", -75, true},
		{"Blank", "", 0, false},
		{"Only whitespace", "   ", 0, false},
		{"Partially typed", "12.", 12, true},
		{"Lone minus", "-", 0, false},
		{"Letters", "abc", 0, false},
		{"NaN", "NaN", 0, false},
		{"Infinity", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseNumber(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("ParseNumber(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseAmountDefaultsToZero(t *testing.T) {
	if got := ParseAmount("not a number"); got != 0 {
		t.Errorf("ParseAmount() = %v, expected 0", got)
	}
	if got := ParseAmount("3000"); got != 3000 {
		t.Errorf("ParseAmount() = %v, expected 3000", got)
	}
}
