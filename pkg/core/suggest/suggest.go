package suggest

import (
	"sort"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

// Suggest ranks the signups for every role of the event that is not full.
// People already assigned on the event are never candidates, whatever role they
// signed up for. limit caps the candidates per role; zero or less means no cap.
func Suggest(state *State, criteria []Criterion, limit int) []RoleSuggestion {
	w := state.Event.WorkflowOrEmpty()
	assigned := make(map[model.PersonID]bool)
	for _, ref := range staffing.AnyAssignment(w) {
		assigned[ref.ID] = true
	}

	var suggestions []RoleSuggestion
	for _, role := range model.Roles {
		occupancy := staffing.OccupancyOf(w, role)
		if occupancy.Full() {
			continue
		}

		suggestion := RoleSuggestion{
			Role:       role,
			Open:       occupancy.Capacity - len(occupancy.Occupants),
			Candidates: []Candidate{},
		}
		for _, ref := range w.Signups(role) {
			if assigned[ref.ID] || !valid(state, criteria, role, ref) {
				continue
			}
			suggestion.Candidates = append(suggestion.Candidates, Candidate{
				Ref:      ref,
				Score:    score(state, criteria, role, ref),
				Workload: state.Workload(ref.ID),
			})
		}

		sort.SliceStable(suggestion.Candidates, func(i, j int) bool {
			a, b := suggestion.Candidates[i], suggestion.Candidates[j]
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			if a.Workload != b.Workload {
				return a.Workload < b.Workload
			}
			return a.Ref.ID < b.Ref.ID
		})
		if limit > 0 && len(suggestion.Candidates) > limit {
			suggestion.Candidates = suggestion.Candidates[:limit]
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions
}

func valid(state *State, criteria []Criterion, role model.Role, ref model.PersonRef) bool {
	for _, c := range criteria {
		if !c.IsCandidateValid(state, role, ref) {
			return false
		}
	}
	return true
}

func score(state *State, criteria []Criterion, role model.Role, ref model.PersonRef) float64 {
	total := 0.0
	for _, c := range criteria {
		total += c.Affinity(state, role, ref) * c.Weight()
	}
	return total
}
