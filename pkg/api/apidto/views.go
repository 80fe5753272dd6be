package apidto

import (
	"time"

	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/core/suggest"
)

type SlotSignups struct {
	Observer int `json:"observer"`
	Producer int `json:"producer"`
	Caster   int `json:"caster"`
}

type Slot struct {
	StartAt  time.Time   `json:"startAt"`
	EventIDs []string    `json:"eventIds"`
	Signups  SlotSignups `json:"signups"`
	Assigned int         `json:"assigned"`
	Coverage string      `json:"coverage"`
}

func FromSlot(s services.SlotSummary) Slot {
	ids := make([]string, 0, len(s.Events))
	for _, e := range s.Events {
		ids = append(ids, e.ID)
	}
	return Slot{
		StartAt:  s.StartAt,
		EventIDs: ids,
		Signups: SlotSignups{
			Observer: s.ObserverSignups,
			Producer: s.ProducerSignups,
			Caster:   s.CasterSignups,
		},
		Assigned: s.Assigned,
		Coverage: string(s.Coverage),
	}
}

type WorkloadEntry struct {
	PersonID      int64  `json:"personId"`
	Name          string `json:"name"`
	ObserverCount int    `json:"observerCount"`
	ProducerCount int    `json:"producerCount"`
	CasterCount   int    `json:"casterCount"`
	TotalCount    int    `json:"totalCount"`
}

func FromWorkload(entries []staffing.WorkloadEntry, directory *people.Directory) []WorkloadEntry {
	out := make([]WorkloadEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, WorkloadEntry{
			PersonID:      int64(e.PersonID),
			Name:          directory.DisplayName(e.PersonID),
			ObserverCount: e.ObserverCount,
			ProducerCount: e.ProducerCount,
			CasterCount:   e.CasterCount,
			TotalCount:    e.TotalCount,
		})
	}
	return out
}

type Candidate struct {
	Person   Person  `json:"person"`
	Score    float64 `json:"score"`
	Workload int     `json:"workload"`
}

type Suggestion struct {
	Role       string      `json:"role"`
	Open       int         `json:"open"`
	Candidates []Candidate `json:"candidates"`
}

func FromSuggestions(suggestions []suggest.RoleSuggestion, directory *people.Directory) []Suggestion {
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		dto := Suggestion{Role: string(s.Role), Open: s.Open, Candidates: make([]Candidate, 0, len(s.Candidates))}
		for _, c := range s.Candidates {
			dto.Candidates = append(dto.Candidates, Candidate{Person: FromRef(c.Ref, directory), Score: c.Score, Workload: c.Workload})
		}
		out = append(out, dto)
	}
	return out
}
