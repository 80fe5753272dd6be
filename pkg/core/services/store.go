package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/db"
)

// maxWriteAttempts bounds how often a mutation is recomputed when another
// writer changed the workflow between our read and our write
const maxWriteAttempts = 3

// StaffingStore defines the store operations needed by signup and assignment mutations
type StaffingStore interface {
	db.EventReader
	db.WorkflowWriter
}

// patchFunc computes the patch for a freshly read event.
// Returning a nil patch means the mutation is already satisfied.
type patchFunc func(e *model.Event) (*db.WorkflowPatch, error)

// patchWithRetry reads the event, computes a patch against what it read and
// writes it conditioned on that read. If a concurrent writer got there first the
// whole read-check-write cycle is repeated, so every business rule is evaluated
// against the state the write actually lands on.
func patchWithRetry(ctx context.Context, store StaffingStore, logger *zap.Logger, op, eventID string, compute patchFunc) (*model.Event, error) {
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		event, err := store.GetEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}

		patch, err := compute(event)
		if err != nil {
			return nil, err
		}
		if patch == nil {
			return event, nil
		}

		patch.Base = event.WorkflowOrEmpty()
		updated, err := store.PatchWorkflow(ctx, eventID, *patch)
		if errors.Is(err, db.ErrConflict) {
			logger.Debug("Workflow changed during write, retrying",
				zap.String("op", op),
				zap.String("event_id", eventID),
				zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, &staffing.StoreWriteError{Op: op, EventID: eventID, NotApplied: true, Err: db.ErrConflict}
}
