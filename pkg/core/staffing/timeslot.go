package staffing

import (
	"sort"
	"time"

	"github.com/emberesports/crewdesk/pkg/core/model"
)

// TimeSlot is the set of events sharing one exact start instant. Never persisted.
type TimeSlot struct {
	StartAt time.Time
	Events  []model.Event
}

// GroupByStart groups events by exact start instant and sorts slots ascending.
// Events keep their encounter order inside a slot.
func GroupByStart(events []model.Event) []TimeSlot {
	index := make(map[int64]int)
	slots := make([]TimeSlot, 0)

	for _, event := range events {
		key := event.StartAt.UnixNano()
		i, ok := index[key]
		if !ok {
			i = len(slots)
			index[key] = i
			slots = append(slots, TimeSlot{StartAt: event.StartAt})
		}
		slots[i].Events = append(slots[i].Events, event)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartAt.Before(slots[j].StartAt)
	})

	return slots
}

// UniqueSignupCount is the number of distinct people signed up for role across the slot
func (s TimeSlot) UniqueSignupCount(role model.Role) int {
	return len(UniquePersons(s.Events, SignupsOf(role)))
}

// UniqueAssignedCount is the number of distinct people assigned to any role across the slot
func (s TimeSlot) UniqueAssignedCount() int {
	return len(UniquePersons(s.Events, AnyAssignment))
}

// Coverage summarises the slot: full when every event is full, partial when any
// event has an occupant, none otherwise.
func (s TimeSlot) Coverage() model.CoverageStatus {
	if len(s.Events) == 0 {
		return model.CoverageNone
	}

	allFull := true
	anyStaffed := false
	for i := range s.Events {
		status := Coverage(s.Events[i].Workflow)
		if status != model.CoverageFull {
			allFull = false
		}
		if status != model.CoverageNone {
			anyStaffed = true
		}
	}

	switch {
	case allFull:
		return model.CoverageFull
	case anyStaffed:
		return model.CoveragePartial
	default:
		return model.CoverageNone
	}
}

// EventIDs lists the ids of the events in the slot
func (s TimeSlot) EventIDs() []string {
	ids := make([]string, len(s.Events))
	for i, event := range s.Events {
		ids[i] = event.ID
	}
	return ids
}
