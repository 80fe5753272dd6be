package staffing

import "github.com/emberesports/crewdesk/pkg/core/model"

// AddSignup records availability of a person for a role on a copy of the workflow.
// Adding a person already present is a no-op (changed == false).
func AddSignup(w *model.ProductionWorkflow, role model.Role, ref model.PersonRef) (*model.ProductionWorkflow, bool) {
	next := w.Clone()
	if SignedUp(next, role, ref.ID) {
		return Derive(next), false
	}

	signups := next.Signups(role)

	if role != model.RoleCaster {
		ref.Style = ""
	}
	updated := make([]model.PersonRef, 0, len(signups)+1)
	updated = append(updated, signups...)
	next.SetSignups(role, append(updated, ref))

	return Derive(next), true
}

// RemoveSignup withdraws a person's availability for a role on a copy of the workflow.
// A signup backing a confirmed assignment for the same role is locked.
func RemoveSignup(eventID string, w *model.ProductionWorkflow, role model.Role, id model.PersonID) (*model.ProductionWorkflow, bool, error) {
	next := w.Clone()

	if OccupancyOf(next, role).Holds(id) {
		return nil, false, &LockedSignupError{EventID: eventID, Role: role, PersonID: id}
	}

	signups := next.Signups(role)
	updated := make([]model.PersonRef, 0, len(signups))
	for _, existing := range signups {
		if existing.ID != id {
			updated = append(updated, existing)
		}
	}
	changed := len(updated) != len(signups)
	next.SetSignups(role, updated)

	return Derive(next), changed, nil
}

// SignedUp reports whether a person has a signup for the role
func SignedUp(w *model.ProductionWorkflow, role model.Role, id model.PersonID) bool {
	for _, ref := range w.Signups(role) {
		if ref.ID == id {
			return true
		}
	}
	return false
}
