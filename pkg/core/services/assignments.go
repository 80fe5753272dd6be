package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/metrics"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/db"
)

// EmailSender defines the mail operation used for assignment notifications
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// Notifications configures assignment emails. A nil *Notifications disables them.
type Notifications struct {
	Sender    EmailSender
	Directory *people.Directory
	Location  *time.Location
}

// AssignResult is the authoritative event after an assignment plus side-effect status
type AssignResult struct {
	Event   *model.Event
	Changed bool // false when the person already held the role

	Notified  bool
	NotifyErr error
}

// Assign confirms a person in a role. The capacity and one-role-per-event rules are
// checked against the stored workflow the write lands on, never a cached copy.
// Assigning someone to a role they already hold returns the event unchanged.
func Assign(ctx context.Context, store StaffingStore, logger *zap.Logger, notify *Notifications, eventID string, role model.Role, ref model.PersonRef) (result *AssignResult, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("assign", start, err) }()

	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	logger.Debug("Assigning",
		zap.String("event_id", eventID),
		zap.String("role", string(role)),
		zap.Int64("person_id", int64(ref.ID)))

	changed := false
	event, err := patchWithRetry(ctx, store, logger, "assign", eventID, func(e *model.Event) (*db.WorkflowPatch, error) {
		next, ok, err := staffing.Assign(eventID, e.Workflow, role, ref)
		if err != nil {
			return nil, err
		}
		changed = ok
		if !ok {
			return nil, nil
		}
		patch := db.AssignmentPatch(role, next)
		return &patch, nil
	})
	if err != nil {
		if staffing.IsBusinessRule(err) {
			logger.Warn("Assignment rejected", zap.String("event_id", eventID), zap.Error(err))
		}
		return nil, err
	}

	result = &AssignResult{Event: event, Changed: changed}
	if !changed {
		return result, nil
	}

	logger.Info("Assigned",
		zap.String("event_id", eventID),
		zap.String("role", string(role)),
		zap.Int64("person_id", int64(ref.ID)),
		zap.String("coverage", string(staffing.Coverage(event.Workflow))))

	if notify != nil && notify.Sender != nil {
		result.Notified, result.NotifyErr = notifyAssignment(notify, event, role, ref.ID)
		if result.NotifyErr != nil {
			logger.Warn("Failed to send assignment email",
				zap.String("event_id", eventID),
				zap.Int64("person_id", int64(ref.ID)),
				zap.Error(result.NotifyErr))
		}
	}

	return result, nil
}

// notifyAssignment emails the assigned person. People without a roster email are skipped.
func notifyAssignment(notify *Notifications, event *model.Event, role model.Role, personID model.PersonID) (bool, error) {
	to, ok := notify.Directory.Email(personID)
	if !ok {
		return false, nil
	}

	loc := notify.Location
	if loc == nil {
		loc = time.UTC
	}

	subject := fmt.Sprintf("You're on %s for %s", role, EventLabel(event))
	body := fmt.Sprintf("Hi %s,\n\nYou have been assigned as %s for %s on %s.\n\nIf you can no longer make it, let the staffing team know so they can reassign the role.\n",
		notify.Directory.DisplayName(personID),
		role,
		EventLabel(event),
		event.StartAt.In(loc).Format("Mon Jan 02 15:04 MST"))

	if err := notify.Sender.SendEmail(to, subject, body); err != nil {
		return false, err
	}
	return true, nil
}

// Unassign removes an occupant from a role, matching personID first and falling
// back to the occupant at index (negative disables the fallback). Removing an
// absent occupant is a no-op. Signups are left in place.
func Unassign(ctx context.Context, store StaffingStore, logger *zap.Logger, eventID string, role model.Role, personID model.PersonID, index int) (event *model.Event, removed *model.PersonRef, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("unassign", start, err) }()

	if !role.IsValid() {
		return nil, nil, fmt.Errorf("invalid role %q", role)
	}

	event, err = patchWithRetry(ctx, store, logger, "unassign", eventID, func(e *model.Event) (*db.WorkflowPatch, error) {
		next, r, err := staffing.Unassign(e.Workflow, role, personID, index)
		if err != nil {
			return nil, err
		}
		removed = r
		if r == nil {
			return nil, nil
		}
		patch := db.AssignmentPatch(role, next)
		return &patch, nil
	})
	if err != nil {
		return nil, nil, err
	}

	if removed != nil {
		logger.Info("Unassigned",
			zap.String("event_id", eventID),
			zap.String("role", string(role)),
			zap.Int64("person_id", int64(removed.ID)),
			zap.String("coverage", string(staffing.Coverage(event.Workflow))))
	}
	return event, removed, nil
}

// EventLabel is the human title of an event, "Team vs Opponent" when there is no title
func EventLabel(e *model.Event) string {
	switch {
	case e.Title != "" && e.Opponent != "":
		return e.Title + ": " + matchup(e)
	case e.Title != "":
		return e.Title
	case e.Team != "" || e.Opponent != "":
		return matchup(e)
	default:
		return "event " + e.ID
	}
}

func matchup(e *model.Event) string {
	if e.Opponent == "" {
		return e.Team
	}
	team := e.Team
	if team == "" {
		team = "TBD"
	}
	return team + " vs " + e.Opponent
}
