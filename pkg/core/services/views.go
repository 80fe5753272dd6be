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

// listActive reads the working set shared by every staffing view
func listActive(ctx context.Context, store db.EventReader, now time.Time) ([]model.Event, error) {
	events, err := store.ListEvents(ctx, db.ActiveFilter(now))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// SlotSummary is the aggregate view of one time slot
type SlotSummary struct {
	StartAt         time.Time
	Events          []model.Event
	ObserverSignups int
	ProducerSignups int
	CasterSignups   int
	Assigned        int
	Coverage        model.CoverageStatus
}

// ListSlots groups the active events into time slots, counting distinct people
func ListSlots(ctx context.Context, store db.EventReader, logger *zap.Logger, now time.Time) (summaries []SlotSummary, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("list_slots", start, err) }()

	events, err := listActive(ctx, store, now)
	if err != nil {
		return nil, err
	}
	metrics.SetCoverage(events)

	slots := staffing.GroupByStart(events)
	logger.Debug("Grouped events into slots", zap.Int("events", len(events)), zap.Int("slots", len(slots)))

	summaries = make([]SlotSummary, 0, len(slots))
	for _, slot := range slots {
		summaries = append(summaries, SlotSummary{
			StartAt:         slot.StartAt,
			Events:          slot.Events,
			ObserverSignups: slot.UniqueSignupCount(model.RoleObserver),
			ProducerSignups: slot.UniqueSignupCount(model.RoleProducer),
			CasterSignups:   slot.UniqueSignupCount(model.RoleCaster),
			Assigned:        slot.UniqueAssignedCount(),
			Coverage:        slot.Coverage(),
		})
	}
	return summaries, nil
}

// ComputeWorkload tallies assignments per person over the active events
func ComputeWorkload(ctx context.Context, store db.EventReader, logger *zap.Logger, now time.Time) (entries []staffing.WorkloadEntry, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("workload", start, err) }()

	events, err := listActive(ctx, store, now)
	if err != nil {
		return nil, err
	}

	entries = staffing.ComputeWorkload(events)
	logger.Debug("Computed workload", zap.Int("events", len(events)), zap.Int("people", len(entries)))
	return entries, nil
}

// CoverageRow is one event with its derived coverage and labelled occupants
type CoverageRow struct {
	Event    model.Event
	Coverage model.CoverageStatus
	Observer string
	Producer string
	Casters  []string
	Missing  []model.Role
}

// Coverage lists events matching the filter with who is staffing them and which roles are still open
func Coverage(ctx context.Context, store db.EventReader, logger *zap.Logger, directory *people.Directory, filter db.EventFilter) (rows []CoverageRow, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("coverage", start, err) }()

	events, err := store.ListEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	metrics.SetCoverage(events)

	rows = make([]CoverageRow, 0, len(events))
	for _, event := range events {
		rows = append(rows, coverageRow(event, directory))
	}

	logger.Debug("Built coverage view", zap.Int("events", len(rows)))
	return rows, nil
}

func coverageRow(event model.Event, directory *people.Directory) CoverageRow {
	w := event.WorkflowOrEmpty()
	row := CoverageRow{
		Event:    event,
		Coverage: staffing.Coverage(w),
		Casters:  make([]string, 0, len(w.AssignedCasters)),
	}
	if w.AssignedObserver != nil {
		row.Observer = directory.Label(*w.AssignedObserver)
	}
	if w.AssignedProducer != nil {
		row.Producer = directory.Label(*w.AssignedProducer)
	}
	for _, ref := range w.AssignedCasters {
		row.Casters = append(row.Casters, directory.Label(ref))
	}
	for _, role := range model.Roles {
		if !staffing.OccupancyOf(w, role).Full() {
			row.Missing = append(row.Missing, role)
		}
	}
	return row
}
