package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/db"
)

const eventColumns = `id, title, team, opponent, start_at, status, is_archived, include_in_schedule, created_at, workflow`

// ListEvents retrieves events matching the filter ordered by start time
func (d *DB) ListEvents(ctx context.Context, filter db.EventFilter) ([]model.Event, error) {
	query, args := buildListQuery(filter)

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &staffing.StoreWriteError{Op: "list", EventID: "*", NotApplied: true, Err: err}
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// buildListQuery turns a filter into a parameterised query
func buildListQuery(filter db.EventFilter) (string, []any) {
	var conditions []string
	var args []any

	if !filter.StartAfter.IsZero() {
		args = append(args, filter.StartAfter.UTC())
		conditions = append(conditions, fmt.Sprintf("start_at >= $%d", len(args)))
	}
	if filter.ExcludeArchived {
		conditions = append(conditions, "NOT is_archived")
	}
	if len(filter.ExcludeStatus) > 0 {
		statuses := make([]string, len(filter.ExcludeStatus))
		for i, s := range filter.ExcludeStatus {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conditions = append(conditions, fmt.Sprintf("status <> ALL($%d)", len(args)))
	}

	query := "SELECT " + eventColumns + " FROM event"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_at, created_at"

	return query, args
}

// GetEvent retrieves a single event
func (d *DB) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}

	row := d.pool.QueryRow(ctx, "SELECT "+eventColumns+" FROM event WHERE id = $1", id)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}
	if err != nil {
		return nil, &staffing.StoreWriteError{Op: "read", EventID: id, NotApplied: true, Err: err}
	}
	return e, nil
}

// PatchWorkflow applies a partial workflow update inside a transaction.
// The row is locked for the duration so the invariant checks run against the
// freshest committed state rather than whatever the caller last read.
func (d *DB) PatchWorkflow(ctx context.Context, id string, patch db.WorkflowPatch) (*model.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}

	if patch.IsEmpty() {
		return d.GetEvent(ctx, id)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, &staffing.StoreWriteError{Op: "patch", EventID: id, NotApplied: true, Err: err}
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx, `SELECT workflow FROM event WHERE id = $1 FOR UPDATE`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}
	if err != nil {
		return nil, &staffing.StoreWriteError{Op: "patch", EventID: id, NotApplied: true, Err: err}
	}

	current, err := decodeWorkflow(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode workflow of event %s: %w", id, err)
	}

	if patch.Conflicts(current) {
		return nil, db.ErrConflict
	}

	next, err := patch.Apply(id, current)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workflow: %w", err)
	}

	row := tx.QueryRow(ctx, `
		UPDATE event SET workflow = $2, coverage_status = $3
		WHERE id = $1
		RETURNING `+eventColumns, id, encoded, string(next.CoverageStatus))
	e, err := scanEvent(row)
	if err != nil {
		return nil, &staffing.StoreWriteError{Op: "patch", EventID: id, NotApplied: true, Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		// The commit outcome is unknown to us once the round trip fails
		return nil, &staffing.StoreWriteError{Op: "patch", EventID: id, NotApplied: false, Err: err}
	}

	d.logger.Debug("Workflow patched",
		zap.String("event_id", id),
		zap.String("coverage", string(next.CoverageStatus)))

	return e, nil
}

// ToggleIncludeInSchedule atomically flips the schedule flag
func (d *DB) ToggleIncludeInSchedule(ctx context.Context, id string) (*model.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}

	row := d.pool.QueryRow(ctx, `
		UPDATE event SET include_in_schedule = NOT include_in_schedule
		WHERE id = $1
		RETURNING `+eventColumns, id)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &staffing.NotFoundError{Kind: "event", ID: id}
	}
	if err != nil {
		return nil, &staffing.StoreWriteError{Op: "toggle schedule", EventID: id, NotApplied: false, Err: err}
	}
	return e, nil
}

// InsertEvents inserts events in a single transaction
func (d *DB) InsertEvents(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range events {
		e := &events[i]
		w := staffing.Derive(e.WorkflowOrEmpty().Clone())
		encoded, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("failed to encode workflow: %w", err)
		}

		status := e.Status
		if status == "" {
			status = model.StatusScheduled
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO event (id, title, team, opponent, start_at, status, is_archived, include_in_schedule, workflow, coverage_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, e.ID, e.Title, e.Team, e.Opponent, e.StartAt.UTC(), string(status), e.IsArchived, e.IncludeInSchedule,
			encoded, string(w.CoverageStatus))
		if err != nil {
			return fmt.Errorf("failed to insert event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// scanEvent reads one row selected with eventColumns
func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	var status string
	var raw []byte
	if err := row.Scan(&e.ID, &e.Title, &e.Team, &e.Opponent, &e.StartAt, &status,
		&e.IsArchived, &e.IncludeInSchedule, &e.CreatedAt, &raw); err != nil {
		return nil, err
	}
	e.Status = model.EventStatus(status)

	w, err := decodeWorkflow(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode workflow of event %s: %w", e.ID, err)
	}
	e.Workflow = w

	return &e, nil
}

// decodeWorkflow parses the JSONB workflow; an empty document is an empty workflow
func decodeWorkflow(raw []byte) (*model.ProductionWorkflow, error) {
	w := model.NewWorkflow()
	if len(raw) == 0 {
		return w, nil
	}
	if err := json.Unmarshal(raw, w); err != nil {
		return nil, err
	}
	// Stored status is a cache; the assignment state is authoritative
	return staffing.Derive(w.Clone()), nil
}
