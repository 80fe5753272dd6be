package staffing

import "github.com/emberesports/crewdesk/pkg/core/model"

// Selector picks a collection of person references out of a workflow
type Selector func(w *model.ProductionWorkflow) []model.PersonRef

// SignupsOf selects the signup collection of a role
func SignupsOf(role model.Role) Selector {
	return func(w *model.ProductionWorkflow) []model.PersonRef {
		return w.Signups(role)
	}
}

// AssignedTo selects the occupants of a single role
func AssignedTo(role model.Role) Selector {
	return func(w *model.ProductionWorkflow) []model.PersonRef {
		return OccupancyOf(w, role).Occupants
	}
}

// AnyAssignment selects every occupant of every role
func AnyAssignment(w *model.ProductionWorkflow) []model.PersonRef {
	return w.Assigned()
}

// UniquePersons returns the distinct person ids selected across events, in encounter order.
// A person appearing on several events counts once.
func UniquePersons(events []model.Event, sel Selector) []model.PersonID {
	seen := make(map[model.PersonID]struct{})
	ids := make([]model.PersonID, 0)
	for i := range events {
		for _, ref := range sel(events[i].WorkflowOrEmpty()) {
			if _, ok := seen[ref.ID]; ok {
				continue
			}
			seen[ref.ID] = struct{}{}
			ids = append(ids, ref.ID)
		}
	}
	return ids
}
