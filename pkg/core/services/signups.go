package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/metrics"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/db"
)

// AddSignup records that a person is available for a role on an event.
// Signing up twice is a no-op; the event is returned either way.
func AddSignup(ctx context.Context, store StaffingStore, logger *zap.Logger, eventID string, role model.Role, ref model.PersonRef) (event *model.Event, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("add_signup", start, err) }()

	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	logger.Debug("Adding signup",
		zap.String("event_id", eventID),
		zap.String("role", string(role)),
		zap.Int64("person_id", int64(ref.ID)))

	added := false
	event, err = patchWithRetry(ctx, store, logger, "add signup", eventID, func(e *model.Event) (*db.WorkflowPatch, error) {
		next, changed := staffing.AddSignup(e.Workflow, role, ref)
		added = changed
		if !changed {
			return nil, nil
		}
		patch := db.SignupsPatch(role, next.Signups(role))
		return &patch, nil
	})
	if err != nil {
		return nil, err
	}

	if added {
		logger.Info("Signup added",
			zap.String("event_id", eventID),
			zap.String("role", string(role)),
			zap.Int64("person_id", int64(ref.ID)))
	}
	return event, nil
}

// RemoveSignup withdraws a person's availability for a role on an event.
// It fails with a LockedSignupError while the person holds that role.
func RemoveSignup(ctx context.Context, store StaffingStore, logger *zap.Logger, eventID string, role model.Role, personID model.PersonID) (event *model.Event, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("remove_signup", start, err) }()

	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	removed := false
	event, err = patchWithRetry(ctx, store, logger, "remove signup", eventID, func(e *model.Event) (*db.WorkflowPatch, error) {
		next, changed, err := staffing.RemoveSignup(eventID, e.Workflow, role, personID)
		if err != nil {
			return nil, err
		}
		removed = changed
		if !changed {
			return nil, nil
		}
		patch := db.SignupsPatch(role, next.Signups(role))
		return &patch, nil
	})
	if err != nil {
		if staffing.IsBusinessRule(err) {
			logger.Warn("Signup removal rejected", zap.String("event_id", eventID), zap.Error(err))
		}
		return nil, err
	}

	if removed {
		logger.Info("Signup removed",
			zap.String("event_id", eventID),
			zap.String("role", string(role)),
			zap.Int64("person_id", int64(personID)))
	}
	return event, nil
}

// SlotSignupResult is the outcome of a signup on one event of a time slot
type SlotSignupResult struct {
	EventID string
	Event   *model.Event
	Err     error
}

// SlotSignupResults reports every event of a slot signup, successful or not
type SlotSignupResults struct {
	StartAt time.Time
	Results []SlotSignupResult
}

// Failed counts the events the signup could not be recorded on
func (r *SlotSignupResults) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// SignupForSlot signs a person up for a role on every active event starting at startAt.
// Only slots in the working set of the other views (upcoming as of now) are open.
// Each event is an independent signup; a failure on one never stops the others.
// The error return is reserved for failing to list the slot at all.
func SignupForSlot(ctx context.Context, store StaffingStore, logger *zap.Logger, now, startAt time.Time, role model.Role, ref model.PersonRef) (*SlotSignupResults, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	events, err := listActive(ctx, store, now)
	if err != nil {
		return nil, err
	}

	var slot *staffing.TimeSlot
	for _, s := range staffing.GroupByStart(events) {
		if s.StartAt.Equal(startAt) {
			slot = &s
			break
		}
	}
	if slot == nil {
		return nil, &staffing.NotFoundError{Kind: "time slot", ID: startAt.UTC().Format(time.RFC3339)}
	}

	results := &SlotSignupResults{StartAt: slot.StartAt}
	for _, eventID := range slot.EventIDs() {
		event, err := AddSignup(ctx, store, logger, eventID, role, ref)
		results.Results = append(results.Results, SlotSignupResult{EventID: eventID, Event: event, Err: err})
	}

	if failed := results.Failed(); failed > 0 {
		logger.Warn("Slot signup partially failed",
			zap.Time("start_at", startAt),
			zap.Int("failed", failed),
			zap.Int("events", len(results.Results)))
	}

	return results, nil
}
