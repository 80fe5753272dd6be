package apidto

import (
	"time"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Style string `json:"style,omitempty"`
}

type Workflow struct {
	Priority       string `json:"priority"`
	CoverageStatus string `json:"coverageStatus"`
	Notes          string `json:"notes,omitempty"`

	ObserverSignups []Person `json:"observerSignups"`
	ProducerSignups []Person `json:"producerSignups"`
	CasterSignups   []Person `json:"casterSignups"`

	AssignedObserver *Person `json:"assignedObserver"`
	AssignedProducer *Person `json:"assignedProducer"`
	AssignedCasters  []Person `json:"assignedCasters"`

	MissingRoles []string `json:"missingRoles"`
}

type Event struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Team              string     `json:"team,omitempty"`
	Opponent          string     `json:"opponent,omitempty"`
	StartAt           time.Time  `json:"startAt"`
	Status            string     `json:"status"`
	IsArchived        bool       `json:"isArchived"`
	IncludeInSchedule bool       `json:"includeInSchedule"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	Workflow          Workflow   `json:"workflow"`
}

// FromEvent converts an event, resolving names through the directory.
// Coverage is derived from the assignments rather than read from the stored field.
func FromEvent(e *model.Event, directory *people.Directory) Event {
	if e == nil {
		return Event{}
	}

	var createdAtPtr *time.Time
	if !e.CreatedAt.IsZero() {
		t := e.CreatedAt
		createdAtPtr = &t
	}

	return Event{
		ID:                e.ID,
		Title:             e.Title,
		Team:              e.Team,
		Opponent:          e.Opponent,
		StartAt:           e.StartAt,
		Status:            string(e.Status),
		IsArchived:        e.IsArchived,
		IncludeInSchedule: e.IncludeInSchedule,
		CreatedAt:         createdAtPtr,
		Workflow:          FromWorkflow(e.WorkflowOrEmpty(), directory),
	}
}

func FromEvents(events []model.Event, directory *people.Directory) []Event {
	out := make([]Event, 0, len(events))
	for i := range events {
		out = append(out, FromEvent(&events[i], directory))
	}
	return out
}

func FromWorkflow(w *model.ProductionWorkflow, directory *people.Directory) Workflow {
	dto := Workflow{
		Priority:        string(w.Priority),
		CoverageStatus:  string(staffing.Coverage(w)),
		Notes:           w.Notes,
		ObserverSignups: fromRefs(w.ObserverSignups, directory),
		ProducerSignups: fromRefs(w.ProducerSignups, directory),
		CasterSignups:   fromRefs(w.CasterSignups, directory),
		AssignedCasters: fromRefs(w.AssignedCasters, directory),
		MissingRoles:    []string{},
	}
	if w.AssignedObserver != nil {
		p := FromRef(*w.AssignedObserver, directory)
		dto.AssignedObserver = &p
	}
	if w.AssignedProducer != nil {
		p := FromRef(*w.AssignedProducer, directory)
		dto.AssignedProducer = &p
	}
	for _, role := range model.Roles {
		if !staffing.OccupancyOf(w, role).Full() {
			dto.MissingRoles = append(dto.MissingRoles, string(role))
		}
	}
	return dto
}

func FromRef(ref model.PersonRef, directory *people.Directory) Person {
	return Person{
		ID:    int64(ref.ID),
		Name:  directory.DisplayName(ref.ID),
		Style: ref.Style,
	}
}

func fromRefs(refs []model.PersonRef, directory *people.Directory) []Person {
	out := make([]Person, 0, len(refs))
	for _, ref := range refs {
		out = append(out, FromRef(ref, directory))
	}
	return out
}
