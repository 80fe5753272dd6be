package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberesports/crewdesk/pkg/api/apierr"
	"github.com/emberesports/crewdesk/pkg/db"
)

func TestAddSignup(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	w := do(router, http.MethodPost, "/events/e1/signups", `{"role":"caster","personId":1,"style":"color"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[eventResp](t, w)
	require.Len(t, resp.Event.Workflow.CasterSignups, 1)
	assert.Equal(t, "Ana", resp.Event.Workflow.CasterSignups[0].Name)
	assert.Equal(t, "color", resp.Event.Workflow.CasterSignups[0].Style)
	assert.Equal(t, "none", resp.Event.Workflow.CoverageStatus)
}

func TestAddSignup_InvalidBody(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	tests := []struct {
		name string
		body string
	}{
		{"unknown role", `{"role":"director","personId":1}`},
		{"missing person", `{"role":"caster"}`},
		{"negative person", `{"role":"caster","personId":-4}`},
		{"not json", `role=caster`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/events/e1/signups", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_REQUEST", errCode(t, w))
		})
	}
}

func TestAddSignup_UnknownEvent(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	w := do(router, http.MethodPost, "/events/nope/signups", `{"role":"observer","personId":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, w))
}

func TestAssign(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	w := do(router, http.MethodPost, "/events/e1/assignments", `{"role":"observer","personId":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[assignResp](t, w)
	assert.True(t, resp.Changed)
	assert.False(t, resp.Notified)
	require.NotNil(t, resp.Event.Workflow.AssignedObserver)
	assert.Equal(t, "Ben", resp.Event.Workflow.AssignedObserver.Name)
	assert.Equal(t, "partial", resp.Event.Workflow.CoverageStatus)
	assert.Equal(t, []string{"producer", "caster"}, resp.Event.Workflow.MissingRoles)

	// same person again is a no-op
	w = do(router, http.MethodPost, "/events/e1/assignments", `{"role":"observer","personId":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[assignResp](t, w).Changed)
}

func TestAssign_BusinessRuleConflicts(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/events/e1/assignments", `{"role":"observer","personId":2}`).Code)

	w := do(router, http.MethodPost, "/events/e1/assignments", `{"role":"observer","personId":3}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ROLE_FULL", errCode(t, w))

	w = do(router, http.MethodPost, "/events/e1/assignments", `{"role":"caster","personId":2}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_ASSIGNMENT", errCode(t, w))
}

func TestRemoveSignup_Locked(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/events/e1/signups", `{"role":"producer","personId":3}`).Code)
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/events/e1/assignments", `{"role":"producer","personId":3}`).Code)

	w := do(router, http.MethodDelete, "/events/e1/signups", `{"role":"producer","personId":3}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SIGNUP_LOCKED", errCode(t, w))

	require.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/events/e1/assignments", `{"role":"producer","personId":3}`).Code)

	w = do(router, http.MethodDelete, "/events/e1/signups", `{"role":"producer","personId":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[eventResp](t, w).Event.Workflow.ProducerSignups)
}

func TestUnassign(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/events/e1/assignments", `{"role":"caster","personId":1,"style":"pbp"}`).Code)
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/events/e1/assignments", `{"role":"caster","personId":3}`).Code)

	t.Run("requires person or index", func(t *testing.T) {
		w := do(router, http.MethodDelete, "/events/e1/assignments", `{"role":"caster"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("falls back to index", func(t *testing.T) {
		w := do(router, http.MethodDelete, "/events/e1/assignments", `{"role":"caster","personId":99,"index":0}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[unassignResp](t, w)
		require.NotNil(t, resp.Removed)
		assert.Equal(t, int64(1), resp.Removed.ID)
		assert.Equal(t, "pbp", resp.Removed.Style)
		require.Len(t, resp.Event.Workflow.AssignedCasters, 1)
		assert.Equal(t, int64(3), resp.Event.Workflow.AssignedCasters[0].ID)
	})

	t.Run("absent occupant is a no-op", func(t *testing.T) {
		w := do(router, http.MethodDelete, "/events/e1/assignments", `{"role":"observer","personId":2}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, decode[unassignResp](t, w).Removed)
	})
}

func TestSetPriority(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	w := do(router, http.MethodPost, "/events/e1/priority", `{"priority":"urgent"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "urgent", decode[eventResp](t, w).Event.Workflow.Priority)

	w = do(router, http.MethodPost, "/events/e1/priority", `{"priority":"whenever"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEvents(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(),
		match("e2", laterAt),
		match("e1", matchAt),
		match("old", now.Add(-48*time.Hour)),
	)

	w := do(router, http.MethodGet, "/events", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[eventsResp](t, w)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "e1", resp.Events[0].ID)
	assert.Equal(t, "e2", resp.Events[1].ID)

	w = do(router, http.MethodGet, "/events?from=2026-10-17T00:00:00Z", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[eventsResp](t, w)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "e2", resp.Events[0].ID)

	w = do(router, http.MethodGet, "/events?from=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errCode(t, w))
}

func TestGetEvent(t *testing.T) {
	router := newRouter(t, db.NewMemoryDB(), match("e1", matchAt))

	w := do(router, http.MethodGet, "/events/e1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Premier Division", decode[eventResp](t, w).Event.Title)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/events/missing", "").Code)
}

func TestStoreWriteFailure(t *testing.T) {
	store := &brokenStore{MemoryDB: db.NewMemoryDB(), broken: map[string]bool{"e1": true}}
	router := newRouter(t, store, match("e1", matchAt))

	w := do(router, http.MethodPost, "/events/e1/signups", `{"role":"observer","personId":1}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	resp := decode[apierr.ErrResponse](t, w)
	assert.Equal(t, "STORE_WRITE_FAILED", resp.Error.Code)
	require.NotNil(t, resp.Error.NotApplied)
	assert.True(t, *resp.Error.NotApplied)
}
