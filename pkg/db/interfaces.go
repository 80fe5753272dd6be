package db

import (
	"context"

	"github.com/emberesports/crewdesk/pkg/core/model"
)

// EventReader defines the read side of the event store
type EventReader interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
}

// WorkflowWriter defines the single write primitive for production workflows.
// Implementations apply the patch to the freshest stored state, re-derive coverage,
// and reject patches that would break capacity or uniqueness invariants.
type WorkflowWriter interface {
	PatchWorkflow(ctx context.Context, id string, patch WorkflowPatch) (*model.Event, error)
}

// Database defines the interface for all event store operations.
// Both postgres.DB and MemoryDB implement this interface.
type Database interface {
	EventReader
	WorkflowWriter
	InsertEvents(ctx context.Context, events []model.Event) error
	ToggleIncludeInSchedule(ctx context.Context, id string) (*model.Event, error)
}
