package staffing

import (
	"sort"

	"github.com/emberesports/crewdesk/pkg/core/model"
)

// WorkloadEntry tallies assignments of one person across a working set of events
type WorkloadEntry struct {
	PersonID      model.PersonID
	ObserverCount int
	ProducerCount int
	CasterCount   int
	TotalCount    int
}

func (e *WorkloadEntry) add(role model.Role) {
	switch role {
	case model.RoleObserver:
		e.ObserverCount++
	case model.RoleProducer:
		e.ProducerCount++
	case model.RoleCaster:
		e.CasterCount++
	}
	e.TotalCount++
}

// ComputeWorkload folds assignments over events into per-person entries sorted by
// total descending. Ties keep the order in which people were first encountered.
func ComputeWorkload(events []model.Event) []WorkloadEntry {
	index := make(map[model.PersonID]int)
	entries := make([]WorkloadEntry, 0)

	for i := range events {
		single := events[i : i+1]
		for _, role := range model.Roles {
			for _, id := range UniquePersons(single, AssignedTo(role)) {
				pos, ok := index[id]
				if !ok {
					pos = len(entries)
					index[id] = pos
					entries = append(entries, WorkloadEntry{PersonID: id})
				}
				entries[pos].add(role)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalCount > entries[j].TotalCount
	})

	return entries
}
