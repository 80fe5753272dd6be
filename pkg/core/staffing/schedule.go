package staffing

import "github.com/emberesports/crewdesk/pkg/core/model"

// Selectable filters events to the broadcast-schedule pool: events with no
// staffing at all are never offered for selection.
func Selectable(events []model.Event) []model.Event {
	pool := make([]model.Event, 0, len(events))
	for _, event := range events {
		if Coverage(event.Workflow) != model.CoverageNone {
			pool = append(pool, event)
		}
	}
	return pool
}

// Selected returns the selectable events whose include flag is set
func Selected(events []model.Event) []model.Event {
	selected := make([]model.Event, 0)
	for _, event := range Selectable(events) {
		if event.IncludeInSchedule {
			selected = append(selected, event)
		}
	}
	return selected
}
