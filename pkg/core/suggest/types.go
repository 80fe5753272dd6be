package suggest

import (
	"time"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

// State is the read-only picture a suggestion is computed from: the event being
// staffed and the working set of events it competes with for people
type State struct {
	Event  *model.Event
	Events []model.Event

	workload    map[model.PersonID]int
	maxWorkload int
	// start instants of every other event each person is assigned to
	busy map[model.PersonID][]time.Time
}

// NewState indexes assignments across events. The target event is excluded from
// busy times but counted in workload.
func NewState(event *model.Event, events []model.Event) *State {
	s := &State{
		Event:    event,
		Events:   events,
		workload: make(map[model.PersonID]int),
		busy:     make(map[model.PersonID][]time.Time),
	}

	for _, entry := range staffing.ComputeWorkload(events) {
		s.workload[entry.PersonID] = entry.TotalCount
		if entry.TotalCount > s.maxWorkload {
			s.maxWorkload = entry.TotalCount
		}
	}

	for i := range events {
		if events[i].ID == event.ID {
			continue
		}
		for _, ref := range staffing.AnyAssignment(events[i].WorkflowOrEmpty()) {
			s.busy[ref.ID] = append(s.busy[ref.ID], events[i].StartAt)
		}
	}

	return s
}

// Workload is the number of assignments a person holds across the working set
func (s *State) Workload(id model.PersonID) int {
	return s.workload[id]
}

// MaxWorkload is the highest workload of anyone in the working set
func (s *State) MaxWorkload() int {
	return s.maxWorkload
}

// BusyAt lists the start instants of other events the person is assigned to
func (s *State) BusyAt(id model.PersonID) []time.Time {
	return s.busy[id]
}

// Candidate is a signed-up person who could fill an open seat
type Candidate struct {
	Ref      model.PersonRef
	Score    float64
	Workload int
}

// RoleSuggestion ranks the candidates for one role that still has open seats
type RoleSuggestion struct {
	Role       model.Role
	Open       int
	Candidates []Candidate
}
