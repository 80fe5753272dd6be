package db

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

// MemoryDB is an in-process event store used for local runs and tests.
// Every read returns deep copies so callers never alias stored state.
type MemoryDB struct {
	mu     sync.Mutex
	events map[string]*model.Event
	order  []string
}

// NewMemoryDB creates an empty in-memory store
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		events: make(map[string]*model.Event),
	}
}

// ListEvents returns events matching the filter, ordered by start instant
func (m *MemoryDB) ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]model.Event, 0, len(m.order))
	for _, id := range m.order {
		e := m.events[id]
		if filter.Matches(e) {
			events = append(events, cloneEvent(e))
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartAt.Before(events[j].StartAt)
	})

	return events, nil
}

// GetEvent returns a single event by id
func (m *MemoryDB) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}
	c := cloneEvent(e)
	return &c, nil
}

// PatchWorkflow applies a partial workflow update under the store lock
func (m *MemoryDB) PatchWorkflow(ctx context.Context, id string, patch WorkflowPatch) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}

	if patch.IsEmpty() {
		c := cloneEvent(e)
		return &c, nil
	}

	if patch.Conflicts(e.Workflow) {
		return nil, ErrConflict
	}

	next, err := patch.Apply(id, e.Workflow)
	if err != nil {
		return nil, err
	}

	e.Workflow = next
	c := cloneEvent(e)
	return &c, nil
}

// ToggleIncludeInSchedule flips the schedule flag of an event
func (m *MemoryDB) ToggleIncludeInSchedule(ctx context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}
	e.IncludeInSchedule = !e.IncludeInSchedule

	c := cloneEvent(e)
	return &c, nil
}

// InsertEvents adds events; ids must be unique across the store and the batch.
// A rejected batch inserts nothing.
func (m *MemoryDB) InsertEvents(ctx context.Context, events []model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool, len(events))
	for i := range events {
		id := events[i].ID
		if _, exists := m.events[id]; exists || seen[id] {
			return fmt.Errorf("event already exists: %s", id)
		}
		seen[id] = true
	}

	for i := range events {
		c := cloneEvent(&events[i])
		if c.Workflow == nil {
			c.Workflow = model.NewWorkflow()
		}
		staffing.Derive(c.Workflow)
		m.events[c.ID] = &c
		m.order = append(m.order, c.ID)
	}

	return nil
}

func cloneEvent(e *model.Event) model.Event {
	c := *e
	if e.Workflow != nil {
		c.Workflow = e.Workflow.Clone()
	}
	return c
}
