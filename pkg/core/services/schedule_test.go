package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/clients/sheetsclient"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/people"
)

type mockPublisher struct {
	sheetID   string
	published *sheetsclient.PublishedSchedule
	err       error
}

func (m *mockPublisher) PublishSchedule(spreadsheetID string, schedule *sheetsclient.PublishedSchedule) error {
	if m.err != nil {
		return m.err
	}
	m.sheetID = spreadsheetID
	m.published = schedule
	return nil
}

func TestToggleInclude(t *testing.T) {
	store := newStore(t, match("e1", matchAt))

	event, err := ToggleInclude(testCtx, store, zap.NewNop(), "e1")
	require.NoError(t, err)
	assert.True(t, event.IncludeInSchedule)

	event, err = ToggleInclude(testCtx, store, zap.NewNop(), "e1")
	require.NoError(t, err)
	assert.False(t, event.IncludeInSchedule)
}

func TestSelectableEvents_ExcludesUnstaffed(t *testing.T) {
	store := newStore(t, match("staffed", matchAt), match("empty", matchAt))
	assignDirect(t, store, "staffed", model.RoleProducer, model.PersonRef{ID: 2})

	// Included but unstaffed events are still not offered
	_, err := ToggleInclude(testCtx, store, zap.NewNop(), "empty")
	require.NoError(t, err)

	pool, err := SelectableEvents(testCtx, store, zap.NewNop(), now)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "staffed", pool[0].ID)
}

func scheduledEvents(t *testing.T) []model.Event {
	t.Helper()

	full := model.NewWorkflow()
	full.AssignedObserver = &model.PersonRef{ID: 1}
	full.AssignedProducer = &model.PersonRef{ID: 2}
	full.AssignedCasters = []model.PersonRef{{ID: 3, Style: "color"}, {ID: 4}}

	partial := model.NewWorkflow()
	partial.AssignedCasters = []model.PersonRef{{ID: 3}}

	valorant := match("val", matchAt)
	valorant.Workflow = full
	valorant.IncludeInSchedule = true

	rocket := model.Event{ID: "rl", Team: "Ember RL", StartAt: laterAt, Workflow: partial, IncludeInSchedule: true}
	notIncluded := model.Event{ID: "skip", Title: "Scrim", StartAt: matchAt, Workflow: partial}
	unstaffed := model.Event{ID: "bare", Title: "Showmatch", StartAt: matchAt, IncludeInSchedule: true}

	return []model.Event{valorant, notIncluded, unstaffed, rocket}
}

func TestBuildBroadcastSchedule(t *testing.T) {
	directory := people.NewDirectory([]model.Person{
		{ID: 1, Name: "Ana"}, {ID: 2, Name: "Ben"}, {ID: 3, Name: "Cleo"},
	})
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	schedule := BuildBroadcastSchedule(scheduledEvents(t), directory, london)

	require.Len(t, schedule.Days, 2)
	assert.Equal(t, "Fri Oct 16 2026", schedule.Days[0].Date)
	require.Len(t, schedule.Days[0].Entries, 1)
	assert.Equal(t, "val", schedule.Days[0].Entries[0].EventID)
	assert.Equal(t, "Sat Oct 17 2026", schedule.Days[1].Date)

	want := "Fri Oct 16 2026\n" +
		"  20:00 BST  Premier Division: Ember Valorant vs Nova\n" +
		"    Producer: Ben | Observer: Ana | Casters: Cleo (color), User #4\n" +
		"\n" +
		"Sat Oct 17 2026\n" +
		"  20:00 BST  Ember RL\n" +
		"    Producer: TBD | Observer: TBD | Casters: Cleo\n"
	assert.Equal(t, want, schedule.Text())

	sheet := schedule.Sheet()
	assert.Equal(t, "Fri Oct 16 2026 - Sat Oct 17 2026", sheet.Tab)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "full", sheet.Rows[0].Coverage)
	assert.Equal(t, []string{"Cleo (color)", "User #4"}, sheet.Rows[0].Casters)
}

func TestBuildBroadcastSchedule_NothingSelected(t *testing.T) {
	schedule := BuildBroadcastSchedule([]model.Event{match("e1", matchAt)}, nil, nil)
	assert.True(t, schedule.Empty())
	assert.Equal(t, "", schedule.Text())
}

func TestPublishSchedule(t *testing.T) {
	store := newStore(t, scheduledEvents(t)...)
	publisher := &mockPublisher{}

	published, err := PublishSchedule(testCtx, store, publisher, zap.NewNop(), nil, "sheet123", time.UTC, now)
	require.NoError(t, err)

	assert.Equal(t, "sheet123", publisher.sheetID)
	assert.Same(t, published, publisher.published)
	assert.Len(t, published.Rows, 2)
	assert.Equal(t, "19:00 UTC", published.Rows[0].Time)
}

func TestPublishSchedule_Errors(t *testing.T) {
	t.Run("no sheet configured", func(t *testing.T) {
		_, err := PublishSchedule(testCtx, newStore(t), &mockPublisher{}, zap.NewNop(), nil, "", time.UTC, now)
		assert.Error(t, err)
	})

	t.Run("nothing selected", func(t *testing.T) {
		store := newStore(t, match("e1", matchAt))
		_, err := PublishSchedule(testCtx, store, &mockPublisher{}, zap.NewNop(), nil, "sheet123", time.UTC, now)
		assert.EqualError(t, err, "no events selected for the schedule")
	})

	t.Run("sheets failure", func(t *testing.T) {
		store := newStore(t, scheduledEvents(t)...)
		_, err := PublishSchedule(testCtx, store, &mockPublisher{err: errors.New("403")}, zap.NewNop(), nil, "sheet123", time.UTC, now)
		assert.ErrorContains(t, err, "failed to publish schedule")
	})
}

func TestSetPriority(t *testing.T) {
	store := newStore(t, match("e1", matchAt))

	event, err := SetPriority(testCtx, store, zap.NewNop(), "e1", model.PriorityUrgent)
	require.NoError(t, err)
	assert.Equal(t, model.PriorityUrgent, event.Workflow.Priority)

	_, err = SetPriority(testCtx, store, zap.NewNop(), "e1", model.Priority("whenever"))
	assert.Error(t, err)

	_, err = SetPriority(testCtx, store, zap.NewNop(), "missing", model.PriorityLow)
	assert.Error(t, err)
}
