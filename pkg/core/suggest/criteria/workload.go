package criteria

import (
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/suggest"
)

// WorkloadBalanceCriterion prefers people holding fewer assignments across the working set.
//
// Affinity:
//   - 1.0 for someone with no assignments, falling linearly to 0.0 for the busiest person
type WorkloadBalanceCriterion struct {
	weight float64
}

func NewWorkloadBalanceCriterion(weight float64) *WorkloadBalanceCriterion {
	return &WorkloadBalanceCriterion{weight: weight}
}

func (c *WorkloadBalanceCriterion) Name() string {
	return "WorkloadBalance"
}

func (c *WorkloadBalanceCriterion) IsCandidateValid(state *suggest.State, role model.Role, ref model.PersonRef) bool {
	return true
}

func (c *WorkloadBalanceCriterion) Affinity(state *suggest.State, role model.Role, ref model.PersonRef) float64 {
	busiest := state.MaxWorkload()
	if busiest == 0 {
		return 1
	}
	return 1 - float64(state.Workload(ref.ID))/float64(busiest)
}

func (c *WorkloadBalanceCriterion) Weight() float64 {
	return c.weight
}
