package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberesports/crewdesk/pkg/core/model"
)

var matchAt = time.Date(2026, 10, 22, 19, 0, 0, 0, time.UTC)

// fixedCriterion scores from a table and vetoes listed people
type fixedCriterion struct {
	scores map[model.PersonID]float64
	veto   map[model.PersonID]bool
	weight float64
}

func (c *fixedCriterion) Name() string { return "Fixed" }

func (c *fixedCriterion) IsCandidateValid(state *State, role model.Role, ref model.PersonRef) bool {
	return !c.veto[ref.ID]
}

func (c *fixedCriterion) Affinity(state *State, role model.Role, ref model.PersonRef) float64 {
	return c.scores[ref.ID]
}

func (c *fixedCriterion) Weight() float64 { return c.weight }

func TestSuggest(t *testing.T) {
	w := model.NewWorkflow()
	w.ObserverSignups = []model.PersonRef{{ID: 1}, {ID: 2}, {ID: 3}}
	w.ProducerSignups = []model.PersonRef{{ID: 4}}
	w.CasterSignups = []model.PersonRef{{ID: 4}, {ID: 5, Style: "color"}, {ID: 6}}
	w.AssignedProducer = &model.PersonRef{ID: 4}
	event := model.Event{ID: "target", StartAt: matchAt, Workflow: w}

	state := NewState(&event, []model.Event{event})
	crit := []Criterion{&fixedCriterion{
		scores: map[model.PersonID]float64{1: 0.2, 2: 0.9, 3: 0.2, 5: 0.4, 6: 0.1},
		veto:   map[model.PersonID]bool{3: true},
		weight: 2,
	}}

	suggestions := Suggest(state, crit, 0)
	require.Len(t, suggestions, 2)

	observer := suggestions[0]
	assert.Equal(t, model.RoleObserver, observer.Role)
	assert.Equal(t, 1, observer.Open)
	require.Len(t, observer.Candidates, 2)
	assert.Equal(t, model.PersonID(2), observer.Candidates[0].Ref.ID)
	assert.InDelta(t, 1.8, observer.Candidates[0].Score, 1e-9)
	assert.Equal(t, model.PersonID(1), observer.Candidates[1].Ref.ID)

	// the producer is full; the assigned producer is not offered as a caster
	caster := suggestions[1]
	assert.Equal(t, model.RoleCaster, caster.Role)
	assert.Equal(t, 2, caster.Open)
	require.Len(t, caster.Candidates, 2)
	assert.Equal(t, model.PersonRef{ID: 5, Style: "color"}, caster.Candidates[0].Ref)
	assert.Equal(t, model.PersonID(6), caster.Candidates[1].Ref.ID)

	limited := Suggest(state, crit, 1)
	assert.Len(t, limited[0].Candidates, 1)
}

func TestSuggest_TiesPreferLowerWorkload(t *testing.T) {
	w := model.NewWorkflow()
	w.ObserverSignups = []model.PersonRef{{ID: 1}, {ID: 2}}
	event := model.Event{ID: "target", StartAt: matchAt, Workflow: w}

	other := model.NewWorkflow()
	other.AssignedObserver = &model.PersonRef{ID: 1}
	events := []model.Event{event, {ID: "other", StartAt: matchAt.Add(time.Hour), Workflow: other}}

	suggestions := Suggest(NewState(&events[0], events), nil, 0)
	require.Len(t, suggestions, 3)
	require.Len(t, suggestions[0].Candidates, 2)
	assert.Equal(t, model.PersonID(2), suggestions[0].Candidates[0].Ref.ID)
	assert.Equal(t, 1, suggestions[0].Candidates[1].Workload)
	assert.Empty(t, suggestions[1].Candidates)
}

func TestNewState(t *testing.T) {
	target := model.NewWorkflow()
	target.AssignedObserver = &model.PersonRef{ID: 1}
	other := model.NewWorkflow()
	other.AssignedCasters = []model.PersonRef{{ID: 1}, {ID: 2}}

	events := []model.Event{
		{ID: "target", StartAt: matchAt, Workflow: target},
		{ID: "other", StartAt: matchAt.Add(2 * time.Hour), Workflow: other},
	}
	state := NewState(&events[0], events)

	assert.Equal(t, 2, state.Workload(1))
	assert.Equal(t, 1, state.Workload(2))
	assert.Equal(t, 2, state.MaxWorkload())
	assert.Equal(t, []time.Time{matchAt.Add(2 * time.Hour)}, state.BusyAt(1))
	assert.Empty(t, state.BusyAt(3))
}

func TestDoubleBookings(t *testing.T) {
	a := model.NewWorkflow()
	a.AssignedObserver = &model.PersonRef{ID: 1}
	a.AssignedCasters = []model.PersonRef{{ID: 2}}
	b := model.NewWorkflow()
	b.AssignedCasters = []model.PersonRef{{ID: 1}}
	c := model.NewWorkflow()
	c.AssignedProducer = &model.PersonRef{ID: 2}

	events := []model.Event{
		{ID: "a", StartAt: matchAt, Workflow: a},
		{ID: "b", StartAt: matchAt, Workflow: b},
		{ID: "c", StartAt: matchAt.Add(time.Hour), Workflow: c},
	}

	bookings := DoubleBookings(events)
	require.Len(t, bookings, 1)
	assert.Equal(t, model.PersonID(1), bookings[0].PersonID)
	assert.Equal(t, []string{"a", "b"}, bookings[0].EventIDs)
	assert.True(t, bookings[0].StartAt.Equal(matchAt))

	assert.Empty(t, DoubleBookings(events[2:]))
}
