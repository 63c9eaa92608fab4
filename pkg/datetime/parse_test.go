package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	result := MustParseTime(AnchorDateLayout, "2025-01-15")
	if result.Format(AnchorDateLayout) != "2025-01-15" {
		t.Errorf("MustParseTime() = %s, expected 2025-01-15", result.Format(AnchorDateLayout))
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(AnchorDateLayout, "invalid-date")
}

func TestOffsetMonths(t *testing.T) {
	tests := []struct {
		name     string
		anchor   string
		months   int
		expected string
	}{
		{
			name:     "Zero months",
			anchor:   "2025-06-10",
			months:   0,
			expected: "2025-06-10",
		},
		{
			name:     "Cross year boundary forward",
			anchor:   "2025-06-10",
			months:   8,
			expected: "2026-02-10",
		},
		{
			name:     "Add multiple years",
			anchor:   "2025-01-01",
			months:   1200,
			expected: "2125-01-01",
		},
		{
			name:     "Day overflow normalizes",
			anchor:   "2025-01-31",
			months:   1,
			expected: "2025-03-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor := MustParseTime(AnchorDateLayout, tt.anchor)
			result := OffsetMonths(anchor, tt.months).Format(AnchorDateLayout)
			if result != tt.expected {
				t.Errorf("OffsetMonths() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestMonthLabel(t *testing.T) {
	anchor := MustParseTime(AnchorDateLayout, "2025-03-15")

	tests := []struct {
		name     string
		offset   int
		horizon  int
		expected string
	}{
		{
			name:     "Short horizon keeps day",
			offset:   0,
			horizon:  3,
			expected: "Mar 15, 2025",
		},
		{
			name:     "One year horizon keeps day",
			offset:   12,
			horizon:  12,
			expected: "Mar 15, 2026",
		},
		{
			name:     "Long horizon drops day",
			offset:   10,
			horizon:  36,
			expected: "Jan 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthLabel(anchor, tt.offset, tt.horizon); got != tt.expected {
				t.Errorf("MonthLabel() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestParseAnchor(t *testing.T) {
	now := time.Date(2025, 7, 4, 9, 30, 0, 0, time.UTC)

	got, err := ParseAnchor("", now)
	if err != nil {
		t.Fatalf("ParseAnchor() error = %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("ParseAnchor(\"\") = %v, expected %v", got, now)
	}

	got, err = ParseAnchor(" 2024-02-29 ", now)
	if err != nil {
		t.Fatalf("ParseAnchor() error = %v", err)
	}
	if got.Format(AnchorDateLayout) != "2024-02-29" {
		t.Errorf("ParseAnchor() = %v, expected 2024-02-29", got)
	}

	if _, err := ParseAnchor("02/29/2024", now); err == nil {
		t.Errorf("ParseAnchor() expected error for malformed date")
	}
}
