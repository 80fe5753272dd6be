package staffing

import "github.com/emberesports/crewdesk/pkg/core/model"

// Assign places a person into a role on a copy of the workflow.
// Assigning a person to a role they already hold is a no-op (changed == false).
// The returned workflow always carries a freshly derived coverage status.
func Assign(eventID string, w *model.ProductionWorkflow, role model.Role, ref model.PersonRef) (*model.ProductionWorkflow, bool, error) {
	next := w.Clone()
	occupancy := OccupancyOf(next, role)

	if occupancy.Holds(ref.ID) {
		return Derive(next), false, nil
	}
	if occupancy.Full() {
		return nil, false, &RoleFullError{EventID: eventID, Role: role, Capacity: occupancy.Capacity}
	}
	if held, ok := heldRole(next, ref.ID); ok {
		return nil, false, &DuplicateAssignmentError{EventID: eventID, PersonID: ref.ID, HeldRole: held}
	}

	if role != model.RoleCaster {
		ref.Style = ""
	}
	occupancy.with(ref).applyTo(next)

	return Derive(next), true, nil
}

// Unassign removes an occupant from a role on a copy of the workflow.
// The occupant is matched by personID first; when that finds nothing and index is a
// valid position the occupant at index is removed instead. A negative index disables
// the fallback. Removing an absent occupant is a no-op so retries are safe.
// Signup collections are never touched.
func Unassign(w *model.ProductionWorkflow, role model.Role, personID model.PersonID, index int) (*model.ProductionWorkflow, *model.PersonRef, error) {
	next := w.Clone()
	occupancy := OccupancyOf(next, role)

	pos := occupancy.IndexOf(personID)
	if pos < 0 && index >= 0 && index < len(occupancy.Occupants) {
		pos = index
	}
	if pos < 0 {
		return Derive(next), nil, nil
	}

	removed := occupancy.Occupants[pos]
	occupancy.without(pos).applyTo(next)

	return Derive(next), &removed, nil
}
