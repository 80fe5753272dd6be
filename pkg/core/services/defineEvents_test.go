package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/config"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/db"
)

var premierDivision = config.EventSeries{
	Title:         "Premier Division",
	Team:          "Ember Valorant",
	RRule:         "FREQ=WEEKLY;BYDAY=TH;BYHOUR=19;BYMINUTE=0",
	DurationWeeks: 3,
}

func TestDefineEvents(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	store := db.NewMemoryDB()
	from := time.Date(2026, 10, 12, 10, 30, 0, 0, london)

	result, err := DefineEvents(testCtx, store, zap.NewNop(), []config.EventSeries{premierDivision}, from, london)
	require.NoError(t, err)

	require.Len(t, result.Created, 3)
	assert.Empty(t, result.Skipped)

	wantStarts := []time.Time{
		time.Date(2026, 10, 15, 19, 0, 0, 0, london),
		time.Date(2026, 10, 22, 19, 0, 0, 0, london),
		time.Date(2026, 10, 29, 19, 0, 0, 0, london), // after the clocks go back
	}
	for i, e := range result.Created {
		assert.True(t, wantStarts[i].Equal(e.StartAt), "occurrence %d: got %s", i, e.StartAt)
		assert.Equal(t, "Premier Division", e.Title)
		assert.Equal(t, "Ember Valorant", e.Team)
		assert.Equal(t, model.StatusScheduled, e.Status)
		assert.NotEmpty(t, e.ID)
	}

	stored, err := store.ListEvents(testCtx, db.EventFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, model.CoverageNone, stored[0].Workflow.CoverageStatus)
}

func TestDefineEvents_RerunSkipsExisting(t *testing.T) {
	store := db.NewMemoryDB()
	from := time.Date(2026, 10, 12, 10, 30, 0, 0, time.UTC)
	series := []config.EventSeries{premierDivision}

	_, err := DefineEvents(testCtx, store, zap.NewNop(), series, from, time.UTC)
	require.NoError(t, err)

	series[0].DurationWeeks = 4
	result, err := DefineEvents(testCtx, store, zap.NewNop(), series, from, time.UTC)
	require.NoError(t, err)

	assert.Len(t, result.Skipped, 3)
	require.Len(t, result.Created, 1)
	assert.True(t, time.Date(2026, 11, 5, 19, 0, 0, 0, time.UTC).Equal(result.Created[0].StartAt))

	stored, err := store.ListEvents(testCtx, db.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}

func TestDefineEvents_NoSeries(t *testing.T) {
	_, err := DefineEvents(testCtx, db.NewMemoryDB(), zap.NewNop(), nil, now, time.UTC)
	assert.EqualError(t, err, "no event series configured")
}

type failingInsertStore struct {
	*db.MemoryDB
}

func (s *failingInsertStore) InsertEvents(ctx context.Context, events []model.Event) error {
	return errors.New("disk full")
}

func TestDefineEvents_InsertFailure(t *testing.T) {
	store := &failingInsertStore{MemoryDB: db.NewMemoryDB()}

	_, err := DefineEvents(testCtx, store, zap.NewNop(), []config.EventSeries{premierDivision}, now, time.UTC)
	assert.ErrorContains(t, err, "failed to insert events")
}

func TestExpandSeries_InvalidRule(t *testing.T) {
	_, err := expandSeries(config.EventSeries{RRule: "NOT_A_RULE", DurationWeeks: 1}, now)
	assert.Error(t, err)
}
