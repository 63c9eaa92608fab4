// Package optimization provides shared data structures for optimization results.
package optimization

import (
	"encoding/json"

	"github.com/iwvelando/runway-forecast/pkg/format"
)

// Summary captures the result of a single goal-seek over one input field.
type Summary struct {
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	Floor           float64  `json:"floor"`
	MinimumCash     float64  `json:"minimumCash"`
	Headroom        float64  `json:"headroom"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

// MarshalJSON encodes an overflowed minimum cash or headroom as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	return json.Marshal(struct {
		plain
		MinimumCash *float64 `json:"minimumCash"`
		Headroom    *float64 `json:"headroom"`
	}{
		plain:       plain(s),
		MinimumCash: format.JSONAmount(s.MinimumCash),
		Headroom:    format.JSONAmount(s.Headroom),
	})
}
