package suggest

import (
	"time"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

// DoubleBooking is a person assigned to more than one event of the same time slot
type DoubleBooking struct {
	PersonID model.PersonID
	StartAt  time.Time
	EventIDs []string
}

// DoubleBookings finds people assigned to simultaneous events. Capacity and
// one-role-per-event are enforced per event by the store; this check spans events.
func DoubleBookings(events []model.Event) []DoubleBooking {
	var bookings []DoubleBooking

	for _, slot := range staffing.GroupByStart(events) {
		if len(slot.Events) < 2 {
			continue
		}

		byPerson := make(map[model.PersonID][]string)
		var order []model.PersonID
		for _, event := range slot.Events {
			for _, ref := range staffing.AnyAssignment(event.WorkflowOrEmpty()) {
				if _, seen := byPerson[ref.ID]; !seen {
					order = append(order, ref.ID)
				}
				byPerson[ref.ID] = append(byPerson[ref.ID], event.ID)
			}
		}

		for _, id := range order {
			if len(byPerson[id]) > 1 {
				bookings = append(bookings, DoubleBooking{PersonID: id, StartAt: slot.StartAt, EventIDs: byPerson[id]})
			}
		}
	}

	return bookings
}
