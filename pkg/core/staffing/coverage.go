package staffing

import "github.com/emberesports/crewdesk/pkg/core/model"

// Coverage derives the coverage status from assignment occupancy.
// A nil workflow has no occupants.
func Coverage(w *model.ProductionWorkflow) model.CoverageStatus {
	if w == nil {
		return model.CoverageNone
	}

	occupied := 0
	saturated := true
	for _, role := range model.Roles {
		o := OccupancyOf(w, role)
		occupied += len(o.Occupants)
		if !o.Full() {
			saturated = false
		}
	}

	switch {
	case saturated:
		return model.CoverageFull
	case occupied == 0:
		return model.CoverageNone
	default:
		return model.CoveragePartial
	}
}

// Derive rewrites the cached coverage status from the assignment state
func Derive(w *model.ProductionWorkflow) *model.ProductionWorkflow {
	w.CoverageStatus = Coverage(w)
	return w
}

// Validate checks the capacity and uniqueness invariants of a workflow
func Validate(eventID string, w *model.ProductionWorkflow) error {
	if w == nil {
		return nil
	}
	if len(w.AssignedCasters) > CasterCapacity {
		return &RoleFullError{EventID: eventID, Role: model.RoleCaster, Capacity: CasterCapacity}
	}

	seen := make(map[model.PersonID]model.Role)
	for _, role := range model.Roles {
		for _, ref := range OccupancyOf(w, role).Occupants {
			if held, ok := seen[ref.ID]; ok {
				return &DuplicateAssignmentError{EventID: eventID, PersonID: ref.ID, HeldRole: held}
			}
			seen[ref.ID] = role
		}
	}
	return nil
}
