package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/metrics"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/db"
)

// SetPriority updates the informational priority of an event's workflow
func SetPriority(ctx context.Context, store db.WorkflowWriter, logger *zap.Logger, eventID string, priority model.Priority) (event *model.Event, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("set_priority", start, err) }()

	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority %q", priority)
	}

	event, err = store.PatchWorkflow(ctx, eventID, db.WorkflowPatch{Priority: &priority})
	if err != nil {
		return nil, err
	}

	logger.Info("Priority set", zap.String("event_id", eventID), zap.String("priority", string(priority)))
	return event, nil
}
