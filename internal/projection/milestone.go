package projection

import "encoding/json"

// MilestoneKind classifies the trajectory of a projection.
type MilestoneKind string

// Milestone kinds.
const (
	AlreadyPositive   MilestoneKind = "alreadyPositive"
	AlreadyNegative   MilestoneKind = "alreadyNegative"
	WillBreakEven     MilestoneKind = "willBreakEven"
	WillExhaustRunway MilestoneKind = "willExhaustRunway"
)

// Milestone is the classification of a projection. For WillBreakEven and
// WillExhaustRunway, Found reports whether the crossing happens within the
// horizon, in which case Month and Label identify the first month at or past
// zero. Month and Label are omitted from JSON unless Found is true.
type Milestone struct {
	Kind  MilestoneKind `json:"kind"`
	Found bool          `json:"found"`
	Month int           `json:"month"`
	Label string        `json:"label,omitempty"`
}

// Classify inspects a series produced by Project for in. ok is false when the
// series is empty.
//
// The trend is positive only when the final net worth is strictly greater
// than the starting amount; a flat trajectory is treated as negative.
func Classify(in Input, series []Point) (m Milestone, ok bool) {
	if len(series) == 0 {
		return Milestone{}, false
	}

	last := series[len(series)-1]
	if last.NetWorth > in.StartingAmount {
		if in.StartingAmount >= 0 {
			return Milestone{Kind: AlreadyPositive}, true
		}
		return firstCrossing(WillBreakEven, series, func(p Point) bool { return p.NetWorth >= 0 }), true
	}

	if in.StartingAmount <= 0 {
		return Milestone{Kind: AlreadyNegative}, true
	}
	return firstCrossing(WillExhaustRunway, series, func(p Point) bool { return p.NetWorth <= 0 }), true
}

// MarshalJSON writes month only for a found crossing, so month 0 is never
// ambiguous.
func (m Milestone) MarshalJSON() ([]byte, error) {
	type plain Milestone
	out := struct {
		plain
		Month *int `json:"month,omitempty"`
	}{plain: plain(m)}
	if m.Found {
		month := m.Month
		out.Month = &month
	}
	return json.Marshal(out)
}

func firstCrossing(kind MilestoneKind, series []Point, crossed func(Point) bool) Milestone {
	for _, p := range series {
		if crossed(p) {
			return Milestone{Kind: kind, Found: true, Month: p.Month, Label: p.Label}
		}
	}
	return Milestone{Kind: kind}
}
