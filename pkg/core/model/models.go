package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleObserver Role = "observer"
	RoleProducer Role = "producer"
	RoleCaster   Role = "caster"
)

// Roles lists every production role in display order
var Roles = []Role{RoleObserver, RoleProducer, RoleCaster}

func (r Role) IsValid() bool {
	return r == RoleObserver || r == RoleProducer || r == RoleCaster
}

// ParseRole converts user input into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role %q (expected observer, producer or caster)", s)
	}
	return r, nil
}

type CoverageStatus string

const (
	CoverageNone    CoverageStatus = "none"
	CoveragePartial CoverageStatus = "partial"
	CoverageFull    CoverageStatus = "full"
)

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// EventStatus is the competitive lifecycle of a match, independent of staffing
type EventStatus string

const (
	StatusScheduled EventStatus = "scheduled"
	StatusLive      EventStatus = "live"
	StatusComplete  EventStatus = "complete"
	StatusCancelled EventStatus = "cancelled"
)

// PersonID references a Person owned by the roster
type PersonID int64

// PersonRef is a person reference inside a workflow collection.
// Style is only meaningful for casters (e.g. "play-by-play", "color").
type PersonRef struct {
	ID    PersonID `json:"id"`
	Style string   `json:"style,omitempty"`
}

// Person is a roster entry. Never mutated by the staffing engine.
type Person struct {
	ID    PersonID
	Name  string
	Email string
}

// ProductionWorkflow is the staffing state embedded in an Event
type ProductionWorkflow struct {
	Priority       Priority       `json:"priority"`
	CoverageStatus CoverageStatus `json:"coverageStatus"`
	Notes          string         `json:"notes,omitempty"`

	ObserverSignups []PersonRef `json:"observerSignups"`
	ProducerSignups []PersonRef `json:"producerSignups"`
	CasterSignups   []PersonRef `json:"casterSignups"`

	AssignedObserver *PersonRef  `json:"assignedObserver"`
	AssignedProducer *PersonRef  `json:"assignedProducer"`
	AssignedCasters  []PersonRef `json:"assignedCasters"`
}

// NewWorkflow returns an empty workflow with defaults applied
func NewWorkflow() *ProductionWorkflow {
	return &ProductionWorkflow{
		Priority:        PriorityNone,
		CoverageStatus:  CoverageNone,
		ObserverSignups: []PersonRef{},
		ProducerSignups: []PersonRef{},
		CasterSignups:   []PersonRef{},
		AssignedCasters: []PersonRef{},
	}
}

// Clone returns a deep copy so callers can mutate without aliasing stored state
func (w *ProductionWorkflow) Clone() *ProductionWorkflow {
	if w == nil {
		return NewWorkflow()
	}
	c := *w
	c.ObserverSignups = cloneRefs(w.ObserverSignups)
	c.ProducerSignups = cloneRefs(w.ProducerSignups)
	c.CasterSignups = cloneRefs(w.CasterSignups)
	c.AssignedCasters = cloneRefs(w.AssignedCasters)
	if w.AssignedObserver != nil {
		r := *w.AssignedObserver
		c.AssignedObserver = &r
	}
	if w.AssignedProducer != nil {
		r := *w.AssignedProducer
		c.AssignedProducer = &r
	}
	if c.Priority == "" {
		c.Priority = PriorityNone
	}
	if c.CoverageStatus == "" {
		c.CoverageStatus = CoverageNone
	}
	return &c
}

// Signups returns the signup collection for a role
func (w *ProductionWorkflow) Signups(role Role) []PersonRef {
	if w == nil {
		return nil
	}
	switch role {
	case RoleObserver:
		return w.ObserverSignups
	case RoleProducer:
		return w.ProducerSignups
	case RoleCaster:
		return w.CasterSignups
	}
	return nil
}

// SetSignups replaces the signup collection for a role
func (w *ProductionWorkflow) SetSignups(role Role, refs []PersonRef) {
	switch role {
	case RoleObserver:
		w.ObserverSignups = refs
	case RoleProducer:
		w.ProducerSignups = refs
	case RoleCaster:
		w.CasterSignups = refs
	}
}

// Assigned returns every assigned person reference across all roles
func (w *ProductionWorkflow) Assigned() []PersonRef {
	if w == nil {
		return nil
	}
	refs := make([]PersonRef, 0, 2+len(w.AssignedCasters))
	if w.AssignedObserver != nil {
		refs = append(refs, *w.AssignedObserver)
	}
	if w.AssignedProducer != nil {
		refs = append(refs, *w.AssignedProducer)
	}
	return append(refs, w.AssignedCasters...)
}

// Event is one schedulable occurrence (a match or an org event)
type Event struct {
	ID                string
	Title             string
	Team              string
	Opponent          string
	StartAt           time.Time
	Status            EventStatus
	IsArchived        bool
	IncludeInSchedule bool
	CreatedAt         time.Time
	Workflow          *ProductionWorkflow // nil is treated as an empty workflow
}

// WorkflowOrEmpty never returns nil
func (e *Event) WorkflowOrEmpty() *ProductionWorkflow {
	if e.Workflow == nil {
		return NewWorkflow()
	}
	return e.Workflow
}

func cloneRefs(refs []PersonRef) []PersonRef {
	out := make([]PersonRef, len(refs))
	copy(out, refs)
	return out
}
