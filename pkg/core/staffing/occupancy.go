package staffing

import "github.com/emberesports/crewdesk/pkg/core/model"

const (
	ObserverCapacity = 1
	ProducerCapacity = 1
	CasterCapacity   = 2
)

type OccupancyKind int

const (
	// Single roles hold at most one nullable occupant
	Single OccupancyKind = iota
	// Multi roles hold an ordered list of occupants up to Capacity
	Multi
)

// RoleOccupancy is a uniform view over the role-specific assignment shapes
// so capacity checks have one code path for every role.
type RoleOccupancy struct {
	Role      model.Role
	Kind      OccupancyKind
	Capacity  int
	Occupants []model.PersonRef
}

// OccupancyOf reads the occupancy of a role from a workflow
func OccupancyOf(w *model.ProductionWorkflow, role model.Role) RoleOccupancy {
	switch role {
	case model.RoleObserver:
		return single(role, ObserverCapacity, w.AssignedObserver)
	case model.RoleProducer:
		return single(role, ProducerCapacity, w.AssignedProducer)
	default:
		occupants := make([]model.PersonRef, len(w.AssignedCasters))
		copy(occupants, w.AssignedCasters)
		return RoleOccupancy{Role: role, Kind: Multi, Capacity: CasterCapacity, Occupants: occupants}
	}
}

func single(role model.Role, capacity int, ref *model.PersonRef) RoleOccupancy {
	o := RoleOccupancy{Role: role, Kind: Single, Capacity: capacity}
	if ref != nil {
		o.Occupants = []model.PersonRef{*ref}
	}
	return o
}

func (o RoleOccupancy) Full() bool {
	return len(o.Occupants) >= o.Capacity
}

func (o RoleOccupancy) Empty() bool {
	return len(o.Occupants) == 0
}

// IndexOf returns the position of a person among the occupants, or -1
func (o RoleOccupancy) IndexOf(id model.PersonID) int {
	for i, ref := range o.Occupants {
		if ref.ID == id {
			return i
		}
	}
	return -1
}

func (o RoleOccupancy) Holds(id model.PersonID) bool {
	return o.IndexOf(id) >= 0
}

// with appends an occupant without checking capacity
func (o RoleOccupancy) with(ref model.PersonRef) RoleOccupancy {
	occupants := make([]model.PersonRef, 0, len(o.Occupants)+1)
	occupants = append(occupants, o.Occupants...)
	o.Occupants = append(occupants, ref)
	return o
}

// without removes the occupant at index
func (o RoleOccupancy) without(index int) RoleOccupancy {
	occupants := make([]model.PersonRef, 0, len(o.Occupants))
	occupants = append(occupants, o.Occupants[:index]...)
	o.Occupants = append(occupants, o.Occupants[index+1:]...)
	return o
}

// applyTo writes the occupancy back into its role-specific field
func (o RoleOccupancy) applyTo(w *model.ProductionWorkflow) {
	if o.Kind == Multi {
		w.AssignedCasters = o.Occupants
		if w.AssignedCasters == nil {
			w.AssignedCasters = []model.PersonRef{}
		}
		return
	}

	var ref *model.PersonRef
	if len(o.Occupants) > 0 {
		r := o.Occupants[0]
		ref = &r
	}
	switch o.Role {
	case model.RoleObserver:
		w.AssignedObserver = ref
	case model.RoleProducer:
		w.AssignedProducer = ref
	}
}

// heldRole returns the role a person occupies on the workflow, if any
func heldRole(w *model.ProductionWorkflow, id model.PersonID) (model.Role, bool) {
	for _, role := range model.Roles {
		if OccupancyOf(w, role).Holds(id) {
			return role, true
		}
	}
	return "", false
}
