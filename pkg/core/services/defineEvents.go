package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/config"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/db"
)

// EventDefinitionStore defines the store operations needed to define events
type EventDefinitionStore interface {
	ListEvents(ctx context.Context, filter db.EventFilter) ([]model.Event, error)
	InsertEvents(ctx context.Context, events []model.Event) error
}

// SkippedOccurrence is a series occurrence that already had an event
type SkippedOccurrence struct {
	Title   string
	StartAt time.Time
}

// DefineEventsResult represents the result of expanding the configured series
type DefineEventsResult struct {
	Created []model.Event
	Skipped []SkippedOccurrence
}

// DefineEvents expands each series from `from` over its configured number of weeks
// and inserts an event with an empty workflow per occurrence. Occurrences that already
// have an event with the same title and start are skipped, so re-running is safe.
// Rules are evaluated in loc, so BYHOUR means local wall-clock time.
func DefineEvents(ctx context.Context, store EventDefinitionStore, logger *zap.Logger, series []config.EventSeries, from time.Time, loc *time.Location) (*DefineEventsResult, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no event series configured")
	}
	if loc == nil {
		loc = time.UTC
	}
	from = from.In(loc).Truncate(time.Minute)

	existing, err := store.ListEvents(ctx, db.EventFilter{StartAfter: from})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing events: %w", err)
	}

	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[occurrenceKey(e.Title, e.StartAt)] = true
	}
	logger.Debug("Found existing events", zap.Int("count", len(existing)))

	result := &DefineEventsResult{}
	now := time.Now()

	for i, s := range series {
		occurrences, err := expandSeries(s, from)
		if err != nil {
			return nil, fmt.Errorf("failed to expand eventSeries[%d]: %w", i, err)
		}

		logger.Debug("Expanded series",
			zap.String("title", s.Title),
			zap.String("rrule", s.RRule),
			zap.Int("occurrences", len(occurrences)))

		for _, at := range occurrences {
			key := occurrenceKey(s.Title, at)
			if taken[key] {
				result.Skipped = append(result.Skipped, SkippedOccurrence{Title: s.Title, StartAt: at})
				continue
			}
			taken[key] = true

			result.Created = append(result.Created, model.Event{
				ID:        uuid.New().String(),
				Title:     s.Title,
				Team:      s.Team,
				Opponent:  s.Opponent,
				StartAt:   at,
				Status:    model.StatusScheduled,
				CreatedAt: now,
				Workflow:  model.NewWorkflow(),
			})
		}
	}

	if len(result.Created) > 0 {
		if err := store.InsertEvents(ctx, result.Created); err != nil {
			return nil, fmt.Errorf("failed to insert events: %w", err)
		}
	}

	logger.Info("Events defined",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// expandSeries lists the occurrences of a series in [from, from + durationWeeks)
func expandSeries(s config.EventSeries, from time.Time) ([]time.Time, error) {
	rule, err := rrule.StrToRRule(s.RRule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}
	rule.DTStart(from)

	until := from.AddDate(0, 0, 7*s.DurationWeeks)
	return rule.Between(from, until.Add(-time.Second), true), nil
}

func occurrenceKey(title string, at time.Time) string {
	return fmt.Sprintf("%s|%d", title, at.UnixNano())
}
