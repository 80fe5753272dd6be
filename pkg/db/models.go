package db

import (
	"errors"
	"slices"
	"time"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

// ErrConflict is returned by PatchWorkflow when a field touched by the patch changed
// after the caller read the workflow the patch was computed from
var ErrConflict = errors.New("workflow changed since it was read")

// EventFilter narrows ListEvents. Zero values disable each condition.
type EventFilter struct {
	StartAfter      time.Time // inclusive lower bound on start instant
	ExcludeArchived bool
	ExcludeStatus   []model.EventStatus
}

// ActiveFilter is the working set every staffing view uses: upcoming,
// non-archived events that are not complete.
func ActiveFilter(now time.Time) EventFilter {
	return EventFilter{
		StartAfter:      now,
		ExcludeArchived: true,
		ExcludeStatus:   []model.EventStatus{model.StatusComplete},
	}
}

// Matches reports whether an event passes the filter
func (f EventFilter) Matches(e *model.Event) bool {
	if !f.StartAfter.IsZero() && e.StartAt.Before(f.StartAfter) {
		return false
	}
	if f.ExcludeArchived && e.IsArchived {
		return false
	}
	for _, status := range f.ExcludeStatus {
		if e.Status == status {
			return false
		}
	}
	return true
}

// Occupant is a patch value for a nullable single-occupant role
type Occupant struct {
	Set bool
	Ref *model.PersonRef
}

// WorkflowPatch is a partial update of a production workflow. Nil fields are left untouched.
// Coverage status is deliberately absent: it is always re-derived on write.
type WorkflowPatch struct {
	Priority *model.Priority
	Notes    *string

	ObserverSignups *[]model.PersonRef
	ProducerSignups *[]model.PersonRef
	CasterSignups   *[]model.PersonRef

	AssignedObserver Occupant
	AssignedProducer Occupant
	AssignedCasters  *[]model.PersonRef

	// Base is the workflow the patch was computed from. When set, the store rejects
	// the patch with ErrConflict if any touched field no longer matches it.
	Base *model.ProductionWorkflow
}

// SignupsPatch replaces the signup collection of one role
func SignupsPatch(role model.Role, refs []model.PersonRef) WorkflowPatch {
	var p WorkflowPatch
	switch role {
	case model.RoleObserver:
		p.ObserverSignups = &refs
	case model.RoleProducer:
		p.ProducerSignups = &refs
	case model.RoleCaster:
		p.CasterSignups = &refs
	}
	return p
}

// AssignmentPatch replaces the occupancy of one role with its value in w
func AssignmentPatch(role model.Role, w *model.ProductionWorkflow) WorkflowPatch {
	var p WorkflowPatch
	switch role {
	case model.RoleObserver:
		p.AssignedObserver = Occupant{Set: true, Ref: w.AssignedObserver}
	case model.RoleProducer:
		p.AssignedProducer = Occupant{Set: true, Ref: w.AssignedProducer}
	case model.RoleCaster:
		casters := w.AssignedCasters
		p.AssignedCasters = &casters
	}
	return p
}

// IsEmpty reports whether the patch changes nothing
func (p WorkflowPatch) IsEmpty() bool {
	return p.Priority == nil && p.Notes == nil &&
		p.ObserverSignups == nil && p.ProducerSignups == nil && p.CasterSignups == nil &&
		!p.AssignedObserver.Set && !p.AssignedProducer.Set && p.AssignedCasters == nil
}

// Conflicts reports whether a field touched by the patch differs between Base and current
func (p WorkflowPatch) Conflicts(current *model.ProductionWorkflow) bool {
	if p.Base == nil {
		return false
	}
	base := p.Base.Clone()
	cur := current.Clone()

	switch {
	case p.ObserverSignups != nil && !slices.Equal(base.ObserverSignups, cur.ObserverSignups):
		return true
	case p.ProducerSignups != nil && !slices.Equal(base.ProducerSignups, cur.ProducerSignups):
		return true
	case p.CasterSignups != nil && !slices.Equal(base.CasterSignups, cur.CasterSignups):
		return true
	}

	// Signup removal is locked by assignments and a person may hold one role per
	// event, so any signup or assignment patch depends on every occupant.
	touches := p.AssignedObserver.Set || p.AssignedProducer.Set || p.AssignedCasters != nil ||
		p.ObserverSignups != nil || p.ProducerSignups != nil || p.CasterSignups != nil
	if touches {
		if !sameRef(base.AssignedObserver, cur.AssignedObserver) ||
			!sameRef(base.AssignedProducer, cur.AssignedProducer) ||
			!slices.Equal(base.AssignedCasters, cur.AssignedCasters) {
			return true
		}
	}
	return false
}

// Apply returns a copy of w with the patch applied and coverage re-derived.
// The result is validated against the capacity and uniqueness invariants.
func (p WorkflowPatch) Apply(eventID string, w *model.ProductionWorkflow) (*model.ProductionWorkflow, error) {
	next := w.Clone()

	if p.Priority != nil {
		next.Priority = *p.Priority
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	if p.ObserverSignups != nil {
		next.ObserverSignups = copyRefs(*p.ObserverSignups)
	}
	if p.ProducerSignups != nil {
		next.ProducerSignups = copyRefs(*p.ProducerSignups)
	}
	if p.CasterSignups != nil {
		next.CasterSignups = copyRefs(*p.CasterSignups)
	}
	if p.AssignedObserver.Set {
		next.AssignedObserver = copyRef(p.AssignedObserver.Ref)
	}
	if p.AssignedProducer.Set {
		next.AssignedProducer = copyRef(p.AssignedProducer.Ref)
	}
	if p.AssignedCasters != nil {
		next.AssignedCasters = copyRefs(*p.AssignedCasters)
	}

	if err := staffing.Validate(eventID, next); err != nil {
		return nil, err
	}

	return staffing.Derive(next), nil
}

func copyRefs(refs []model.PersonRef) []model.PersonRef {
	out := make([]model.PersonRef, len(refs))
	copy(out, refs)
	return out
}

func sameRef(a, b *model.PersonRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyRef(ref *model.PersonRef) *model.PersonRef {
	if ref == nil {
		return nil
	}
	r := *ref
	return &r
}
