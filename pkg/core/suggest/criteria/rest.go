package criteria

import (
	"time"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/suggest"
)

// RestCriterion prefers people whose nearest other broadcast is far from this one.
//
// Affinity:
//   - 1.0 when the candidate has no other assignment within the window
//   - Otherwise the distance to the nearest assignment as a fraction of the window
type RestCriterion struct {
	weight float64
	window time.Duration
}

func NewRestCriterion(weight float64, window time.Duration) *RestCriterion {
	return &RestCriterion{weight: weight, window: window}
}

func (c *RestCriterion) Name() string {
	return "Rest"
}

func (c *RestCriterion) IsCandidateValid(state *suggest.State, role model.Role, ref model.PersonRef) bool {
	return true
}

func (c *RestCriterion) Affinity(state *suggest.State, role model.Role, ref model.PersonRef) float64 {
	if c.window <= 0 {
		return 1
	}

	nearest := c.window
	for _, at := range state.BusyAt(ref.ID) {
		gap := at.Sub(state.Event.StartAt)
		if gap < 0 {
			gap = -gap
		}
		if gap < nearest {
			nearest = gap
		}
	}
	return float64(nearest) / float64(c.window)
}

func (c *RestCriterion) Weight() float64 {
	return c.weight
}
