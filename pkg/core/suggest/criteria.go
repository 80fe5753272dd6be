package suggest

import "github.com/emberesports/crewdesk/pkg/core/model"

// Criterion defines the interface for candidate ranking criteria
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsCandidateValid vetoes a candidate. If ANY criterion returns false the
	// candidate is not suggested for the role.
	IsCandidateValid(state *State, role model.Role, ref model.PersonRef) bool

	// Affinity scores how well the candidate fits the role, between 0.0 and 1.0.
	// Return 0 if this criterion doesn't affect ranking.
	Affinity(state *State, role model.Role, ref model.PersonRef) float64

	// Weight multiplies Affinity (typical range: 0.0 - 10.0)
	Weight() float64
}
