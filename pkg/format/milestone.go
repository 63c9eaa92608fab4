package format

import (
	"fmt"

	"github.com/iwvelando/runway-forecast/internal/projection"
)

// Milestone describes a milestone in one sentence for summaries.
func Milestone(m projection.Milestone) string {
	switch m.Kind {
	case projection.AlreadyPositive:
		return "Net worth stays positive and keeps growing."
	case projection.AlreadyNegative:
		return "Net worth is already negative and keeps falling."
	case projection.WillBreakEven:
		if m.Found {
			return fmt.Sprintf("Breaks even around %s.", m.Label)
		}
		return "Does not break even within this period."
	case projection.WillExhaustRunway:
		if m.Found {
			return fmt.Sprintf("Runway runs out around %s.", m.Label)
		}
		return "Runway lasts beyond this period."
	}
	return ""
}
