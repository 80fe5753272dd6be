package criteria

import (
	"strings"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/suggest"
)

// CasterPairingCriterion prefers a caster whose style complements the caster
// already on the desk (play-by-play next to color).
//
// Affinity:
//   - Only applies to the caster role with one seat taken
//   - 1.0 for a different declared style, 0.0 for the same style, 0.5 when either is undeclared
type CasterPairingCriterion struct {
	weight float64
}

func NewCasterPairingCriterion(weight float64) *CasterPairingCriterion {
	return &CasterPairingCriterion{weight: weight}
}

func (c *CasterPairingCriterion) Name() string {
	return "CasterPairing"
}

func (c *CasterPairingCriterion) IsCandidateValid(state *suggest.State, role model.Role, ref model.PersonRef) bool {
	return true
}

func (c *CasterPairingCriterion) Affinity(state *suggest.State, role model.Role, ref model.PersonRef) float64 {
	if role != model.RoleCaster {
		return 0
	}
	casters := state.Event.WorkflowOrEmpty().AssignedCasters
	if len(casters) != 1 {
		return 0
	}

	current := normalizeStyle(casters[0].Style)
	candidate := normalizeStyle(ref.Style)
	switch {
	case current == "" || candidate == "":
		return 0.5
	case current == candidate:
		return 0
	default:
		return 1
	}
}

func (c *CasterPairingCriterion) Weight() float64 {
	return c.weight
}

func normalizeStyle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
