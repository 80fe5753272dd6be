package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/db"
)

var (
	now      = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	matchAt  = now.Add(7 * time.Hour)
	laterAt  = now.Add(31 * time.Hour)
	earlier  = now.Add(-24 * time.Hour)
	testCtx  = context.Background()
	errStore = errors.New("connection reset by peer")
)

func newStore(t *testing.T, events ...model.Event) *db.MemoryDB {
	t.Helper()
	store := db.NewMemoryDB()
	require.NoError(t, store.InsertEvents(testCtx, events))
	return store
}

func match(id string, at time.Time) model.Event {
	return model.Event{ID: id, Title: "Premier Division", Team: "Ember Valorant", Opponent: "Nova", StartAt: at, Status: model.StatusScheduled}
}

// racingStore lets a second writer change the stored workflow between a
// service's read and its first write
type racingStore struct {
	*db.MemoryDB
	race    func(m *db.MemoryDB)
	patches int
}

func (s *racingStore) PatchWorkflow(ctx context.Context, id string, patch db.WorkflowPatch) (*model.Event, error) {
	s.patches++
	if s.race != nil {
		race := s.race
		s.race = nil
		race(s.MemoryDB)
	}
	return s.MemoryDB.PatchWorkflow(ctx, id, patch)
}

// conflictStore never manages to land a conditional write
type conflictStore struct {
	*db.MemoryDB
	patches int
}

func (s *conflictStore) PatchWorkflow(ctx context.Context, id string, patch db.WorkflowPatch) (*model.Event, error) {
	s.patches++
	return nil, db.ErrConflict
}

// brokenStore fails writes to the listed events
type brokenStore struct {
	*db.MemoryDB
	broken map[string]bool
}

func (s *brokenStore) PatchWorkflow(ctx context.Context, id string, patch db.WorkflowPatch) (*model.Event, error) {
	if s.broken[id] {
		return nil, &staffing.StoreWriteError{Op: "patch", EventID: id, NotApplied: true, Err: errStore}
	}
	return s.MemoryDB.PatchWorkflow(ctx, id, patch)
}

type sentEmail struct {
	to, subject, body string
}

type mockSender struct {
	sent []sentEmail
	err  error
}

func (m *mockSender) SendEmail(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func assignDirect(t *testing.T, m *db.MemoryDB, eventID string, role model.Role, ref model.PersonRef) {
	t.Helper()
	e, err := m.GetEvent(testCtx, eventID)
	require.NoError(t, err)
	next, _, err := staffing.Assign(eventID, e.Workflow, role, ref)
	require.NoError(t, err)
	_, err = m.PatchWorkflow(testCtx, eventID, db.AssignmentPatch(role, next))
	require.NoError(t, err)
}
