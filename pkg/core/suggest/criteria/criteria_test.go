package criteria

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/suggest"
)

var matchAt = time.Date(2026, 10, 22, 19, 0, 0, 0, time.UTC)

func event(id string, at time.Time, assigned ...model.PersonRef) model.Event {
	w := model.NewWorkflow()
	w.AssignedCasters = append(w.AssignedCasters, assigned...)
	return model.Event{ID: id, StartAt: at, Workflow: w}
}

func TestNoDoubleBookingCriterion(t *testing.T) {
	target := event("target", matchAt)
	events := []model.Event{
		target,
		event("same-slot", matchAt, model.PersonRef{ID: 1}),
		event("next-day", matchAt.Add(24*time.Hour), model.PersonRef{ID: 2}),
	}
	state := suggest.NewState(&events[0], events)
	c := NewNoDoubleBookingCriterion()

	assert.False(t, c.IsCandidateValid(state, model.RoleObserver, model.PersonRef{ID: 1}))
	assert.True(t, c.IsCandidateValid(state, model.RoleObserver, model.PersonRef{ID: 2}))
	assert.True(t, c.IsCandidateValid(state, model.RoleObserver, model.PersonRef{ID: 3}))
	assert.Equal(t, 0.0, c.Weight())
}

func TestWorkloadBalanceCriterion(t *testing.T) {
	events := []model.Event{
		event("target", matchAt),
		event("a", matchAt.Add(24*time.Hour), model.PersonRef{ID: 1}, model.PersonRef{ID: 2}),
		event("b", matchAt.Add(48*time.Hour), model.PersonRef{ID: 1}),
	}
	state := suggest.NewState(&events[0], events)
	c := NewWorkloadBalanceCriterion(3)

	assert.Equal(t, 0.0, c.Affinity(state, model.RoleCaster, model.PersonRef{ID: 1}))
	assert.Equal(t, 0.5, c.Affinity(state, model.RoleCaster, model.PersonRef{ID: 2}))
	assert.Equal(t, 1.0, c.Affinity(state, model.RoleCaster, model.PersonRef{ID: 3}))
	assert.Equal(t, 3.0, c.Weight())

	empty := suggest.NewState(&events[0], events[:1])
	assert.Equal(t, 1.0, c.Affinity(empty, model.RoleCaster, model.PersonRef{ID: 1}))
}

func TestRestCriterion(t *testing.T) {
	events := []model.Event{
		event("target", matchAt),
		event("earlier", matchAt.Add(-6*time.Hour), model.PersonRef{ID: 1}),
		event("later", matchAt.Add(18*time.Hour), model.PersonRef{ID: 1}),
		event("far", matchAt.Add(72*time.Hour), model.PersonRef{ID: 2}),
	}
	state := suggest.NewState(&events[0], events)
	c := NewRestCriterion(2, 24*time.Hour)

	assert.Equal(t, 0.25, c.Affinity(state, model.RoleProducer, model.PersonRef{ID: 1}))
	assert.Equal(t, 1.0, c.Affinity(state, model.RoleProducer, model.PersonRef{ID: 2}))
	assert.Equal(t, 1.0, c.Affinity(state, model.RoleProducer, model.PersonRef{ID: 3}))
}

func TestCasterPairingCriterion(t *testing.T) {
	c := NewCasterPairingCriterion(1)

	withColor := event("target", matchAt, model.PersonRef{ID: 1, Style: "Color"})
	state := suggest.NewState(&withColor, []model.Event{withColor})

	tests := []struct {
		name  string
		role  model.Role
		style string
		want  float64
	}{
		{"complementary style", model.RoleCaster, "play-by-play", 1},
		{"same style", model.RoleCaster, " color ", 0},
		{"undeclared style", model.RoleCaster, "", 0.5},
		{"not a caster", model.RoleObserver, "play-by-play", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Affinity(state, tt.role, model.PersonRef{ID: 2, Style: tt.style}))
		})
	}

	empty := event("empty", matchAt)
	assert.Equal(t, 0.0, c.Affinity(suggest.NewState(&empty, nil), model.RoleCaster, model.PersonRef{ID: 2, Style: "color"}))
}

func TestDefaults(t *testing.T) {
	names := make([]string, 0)
	for _, c := range Defaults() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"NoDoubleBooking", "WorkloadBalance", "Rest", "CasterPairing"}, names)
}
