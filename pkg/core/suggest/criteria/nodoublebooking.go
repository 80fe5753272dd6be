package criteria

import (
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/suggest"
)

// NoDoubleBookingCriterion rejects people already assigned to another event
// starting at the same instant.
//
// Validity:
//   - Invalid when the candidate is busy at the event's start
//
// Affinity:
//   - None
type NoDoubleBookingCriterion struct{}

func NewNoDoubleBookingCriterion() *NoDoubleBookingCriterion {
	return &NoDoubleBookingCriterion{}
}

func (c *NoDoubleBookingCriterion) Name() string {
	return "NoDoubleBooking"
}

func (c *NoDoubleBookingCriterion) IsCandidateValid(state *suggest.State, role model.Role, ref model.PersonRef) bool {
	for _, at := range state.BusyAt(ref.ID) {
		if at.Equal(state.Event.StartAt) {
			return false
		}
	}
	return true
}

func (c *NoDoubleBookingCriterion) Affinity(state *suggest.State, role model.Role, ref model.PersonRef) float64 {
	return 0
}

func (c *NoDoubleBookingCriterion) Weight() float64 {
	return 0
}
