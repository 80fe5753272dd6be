package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/metrics"
	"github.com/emberesports/crewdesk/pkg/core/suggest"
	"github.com/emberesports/crewdesk/pkg/db"
)

// SuggestAssignments ranks signed-up people for every open role of an event,
// scored against the assignments of the active working set. Nothing is written.
func SuggestAssignments(ctx context.Context, store db.EventReader, logger *zap.Logger, eventID string, now time.Time, criteria []suggest.Criterion, limit int) (suggestions []suggest.RoleSuggestion, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("suggest", start, err) }()

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	events, err := listActive(ctx, store, now)
	if err != nil {
		return nil, err
	}

	suggestions = suggest.Suggest(suggest.NewState(event, events), criteria, limit)
	logger.Debug("Suggested assignments",
		zap.String("event_id", eventID),
		zap.Int("open_roles", len(suggestions)))
	return suggestions, nil
}
