package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/db"
)

const testDatabaseURLEnv = "CREWDESK_TEST_DATABASE_URL"

// openTestDB connects to the database named by CREWDESK_TEST_DATABASE_URL and
// inserts one fresh event, removed again when the test ends
func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	url := os.Getenv(testDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping postgres integration test", testDatabaseURLEnv)
	}

	ctx := context.Background()
	d, err := NewDB(ctx, url, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(d.Close)
	require.NoError(t, d.RunMigrations(ctx))

	id := uuid.New().String()
	require.NoError(t, d.InsertEvents(ctx, []model.Event{{
		ID:      id,
		Title:   "Premier Division",
		Team:    "Ember Valorant",
		StartAt: time.Now().Add(24 * time.Hour).Truncate(time.Second),
	}}))
	t.Cleanup(func() {
		_, err := d.pool.Exec(context.Background(), `DELETE FROM event WHERE id = $1`, id)
		assert.NoError(t, err)
	})

	return d, id
}

func TestPatchWorkflow_RejectsInvariantViolationsOnLockedRow(t *testing.T) {
	d, id := openTestDB(t)
	ctx := context.Background()

	casters := []model.PersonRef{{ID: 1, Style: "color"}, {ID: 2}}
	e, err := d.PatchWorkflow(ctx, id, db.WorkflowPatch{AssignedCasters: &casters})
	require.NoError(t, err)
	assert.Equal(t, model.CoveragePartial, e.Workflow.CoverageStatus)

	tooMany := []model.PersonRef{{ID: 1}, {ID: 2}, {ID: 3}}
	_, err = d.PatchWorkflow(ctx, id, db.WorkflowPatch{AssignedCasters: &tooMany})
	assert.ErrorIs(t, err, staffing.ErrRoleFull)

	_, err = d.PatchWorkflow(ctx, id, db.WorkflowPatch{AssignedObserver: db.Occupant{Set: true, Ref: &model.PersonRef{ID: 2}}})
	assert.ErrorIs(t, err, staffing.ErrDuplicateAssignment)

	// the rejected transactions rolled back
	stored, err := d.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, casters, stored.Workflow.AssignedCasters)
	assert.Nil(t, stored.Workflow.AssignedObserver)

	// the service path re-checks capacity against the locked row
	_, err = services.Assign(ctx, d, zap.NewNop(), nil, id, model.RoleCaster, model.PersonRef{ID: 3})
	assert.ErrorIs(t, err, staffing.ErrRoleFull)
}

func TestPatchWorkflow_StaleBaseConflicts(t *testing.T) {
	d, id := openTestDB(t)
	ctx := context.Background()

	read, err := d.GetEvent(ctx, id)
	require.NoError(t, err)

	// another writer lands first
	observer := model.PersonRef{ID: 5}
	_, err = d.PatchWorkflow(ctx, id, db.WorkflowPatch{AssignedObserver: db.Occupant{Set: true, Ref: &observer}})
	require.NoError(t, err)

	patch := db.SignupsPatch(model.RoleObserver, []model.PersonRef{{ID: 6}})
	patch.Base = read.WorkflowOrEmpty()
	_, err = d.PatchWorkflow(ctx, id, patch)
	assert.ErrorIs(t, err, db.ErrConflict)

	stored, err := d.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, stored.Workflow.ObserverSignups)
	assert.Equal(t, &observer, stored.Workflow.AssignedObserver)
	assert.Equal(t, model.CoveragePartial, stored.Workflow.CoverageStatus)
}

func TestPatchWorkflow_EmptyPatchAndUnknownEvent(t *testing.T) {
	d, id := openTestDB(t)
	ctx := context.Background()

	e, err := d.PatchWorkflow(ctx, id, db.WorkflowPatch{})
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, model.CoverageNone, e.Workflow.CoverageStatus)

	priority := model.PriorityHigh
	_, err = d.PatchWorkflow(ctx, uuid.New().String(), db.WorkflowPatch{Priority: &priority})
	assert.ErrorIs(t, err, staffing.ErrNotFound)

	_, err = d.PatchWorkflow(ctx, "not-a-uuid", db.WorkflowPatch{Priority: &priority})
	assert.ErrorIs(t, err, staffing.ErrNotFound)
}
