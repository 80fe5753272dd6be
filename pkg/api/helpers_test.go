package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/api/apierr"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/db"
)

var (
	now     = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	matchAt = now.Add(7 * time.Hour)
	laterAt = now.Add(31 * time.Hour)
)

func init() {
	gin.SetMode(gin.TestMode)
}

func match(id string, at time.Time) model.Event {
	return model.Event{ID: id, Title: "Premier Division", Team: "Ember Valorant", Opponent: "Nova", StartAt: at, Status: model.StatusScheduled}
}

var roster = people.NewDirectory([]model.Person{
	{ID: 1, Name: "Ana", Email: "ana@example.com"},
	{ID: 2, Name: "Ben"},
	{ID: 3, Name: "Cleo"},
})

func newRouter(t *testing.T, store db.Database, events ...model.Event) *gin.Engine {
	t.Helper()
	require.NoError(t, store.InsertEvents(context.Background(), events))

	logger := zap.NewNop()
	eventHandler := NewEventHandler(logger, store, roster, nil)
	eventHandler.now = func() time.Time { return now }
	slotHandler := NewSlotHandler(logger, store, roster)
	slotHandler.now = func() time.Time { return now }
	scheduleHandler := NewScheduleHandler(logger, store, roster, time.UTC)
	scheduleHandler.now = func() time.Time { return now }

	return NewRouter(logger, eventHandler, slotHandler, scheduleHandler)
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrResponse](t, w).Error.Code
}

// brokenStore fails writes to the listed events
type brokenStore struct {
	*db.MemoryDB
	broken map[string]bool
}

func (s *brokenStore) PatchWorkflow(ctx context.Context, id string, patch db.WorkflowPatch) (*model.Event, error) {
	if s.broken[id] {
		return nil, &staffing.StoreWriteError{Op: "patch", EventID: id, NotApplied: true, Err: context.DeadlineExceeded}
	}
	return s.MemoryDB.PatchWorkflow(ctx, id, patch)
}
