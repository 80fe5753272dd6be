package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/core/suggest/criteria"
)

func TestSuggestAssignments(t *testing.T) {
	store := newStore(t, match("a", matchAt), match("b", matchAt), match("c", laterAt))
	for _, id := range []model.PersonID{1, 2, 3} {
		_, err := AddSignup(testCtx, store, zap.NewNop(), "a", model.RoleObserver, model.PersonRef{ID: id})
		require.NoError(t, err)
	}
	// 1 is already on the desk of a simultaneous event, 2 is busy later
	assignDirect(t, store, "b", model.RoleProducer, model.PersonRef{ID: 1})
	assignDirect(t, store, "c", model.RoleProducer, model.PersonRef{ID: 2})

	suggestions, err := SuggestAssignments(testCtx, store, zap.NewNop(), "a", now, criteria.Defaults(), 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	observer := suggestions[0]
	assert.Equal(t, model.RoleObserver, observer.Role)
	require.Len(t, observer.Candidates, 2)
	assert.Equal(t, model.PersonID(3), observer.Candidates[0].Ref.ID)
	assert.Equal(t, model.PersonID(2), observer.Candidates[1].Ref.ID)
	assert.Equal(t, 1, observer.Candidates[1].Workload)

	event, err := store.GetEvent(testCtx, "a")
	require.NoError(t, err)
	assert.Nil(t, event.Workflow.AssignedObserver)
}

func TestSuggestAssignments_UnknownEvent(t *testing.T) {
	store := newStore(t, match("a", matchAt))

	_, err := SuggestAssignments(testCtx, store, zap.NewNop(), "missing", now, criteria.Defaults(), 3)
	assert.ErrorIs(t, err, staffing.ErrNotFound)
}
