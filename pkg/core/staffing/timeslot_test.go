package staffing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberesports/crewdesk/pkg/core/model"
)

func eventAt(id string, start time.Time, w *model.ProductionWorkflow) model.Event {
	return model.Event{ID: id, StartAt: start, Workflow: w}
}

func TestGroupByStart(t *testing.T) {
	seven := time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC)
	sevenTen := seven.Add(10 * time.Minute)
	six := seven.Add(-time.Hour)

	events := []model.Event{
		eventAt("a", seven, nil),
		eventAt("b", sevenTen, nil),
		eventAt("c", six, nil),
		eventAt("d", seven.In(time.FixedZone("CEST", 2*3600)), nil),
	}

	slots := GroupByStart(events)

	require.Len(t, slots, 3)
	assert.True(t, slots[0].StartAt.Equal(six))
	assert.True(t, slots[1].StartAt.Equal(seven))
	assert.True(t, slots[2].StartAt.Equal(sevenTen))
	assert.Equal(t, []string{"a", "d"}, slots[1].EventIDs(), "same instant in another zone joins the slot")
}

func TestGroupByStart_Empty(t *testing.T) {
	assert.Empty(t, GroupByStart(nil))
}

func TestTimeSlot_UniqueSignupCount(t *testing.T) {
	start := time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC)
	events := make([]model.Event, 0, 3)
	for _, id := range []string{"e1", "e2", "e3"} {
		w, _ := AddSignup(nil, model.RoleObserver, model.PersonRef{ID: 1})
		events = append(events, eventAt(id, start, w))
	}
	events[2].Workflow, _ = AddSignup(events[2].Workflow, model.RoleObserver, model.PersonRef{ID: 2})

	slots := GroupByStart(events)
	require.Len(t, slots, 1)

	assert.Equal(t, 2, slots[0].UniqueSignupCount(model.RoleObserver))
	assert.Equal(t, 0, slots[0].UniqueSignupCount(model.RoleCaster))
}

func TestTimeSlot_SamePersonOnEveryEventCountsOnce(t *testing.T) {
	start := time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC)
	var events []model.Event
	for _, id := range []string{"e1", "e2", "e3"} {
		w, _ := AddSignup(nil, model.RoleObserver, model.PersonRef{ID: 42})
		events = append(events, eventAt(id, start, w))
	}

	slot := GroupByStart(events)[0]
	assert.Equal(t, 1, slot.UniqueSignupCount(model.RoleObserver))
}

func TestTimeSlot_UniqueAssignedCount(t *testing.T) {
	start := time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC)

	w1 := model.NewWorkflow()
	w1.AssignedObserver = &model.PersonRef{ID: 1}
	w1.AssignedCasters = []model.PersonRef{{ID: 2}}

	w2 := model.NewWorkflow()
	w2.AssignedProducer = &model.PersonRef{ID: 1}
	w2.AssignedCasters = []model.PersonRef{{ID: 3}}

	slot := GroupByStart([]model.Event{eventAt("e1", start, w1), eventAt("e2", start, w2)})[0]
	assert.Equal(t, 3, slot.UniqueAssignedCount())
}

func TestTimeSlot_Coverage(t *testing.T) {
	start := time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC)

	full := model.NewWorkflow()
	full.AssignedObserver = &model.PersonRef{ID: 1}
	full.AssignedProducer = &model.PersonRef{ID: 2}
	full.AssignedCasters = []model.PersonRef{{ID: 3}, {ID: 4}}

	partial := model.NewWorkflow()
	partial.AssignedCasters = []model.PersonRef{{ID: 5}}

	tests := []struct {
		name      string
		workflows []*model.ProductionWorkflow
		want      model.CoverageStatus
	}{
		{"all full", []*model.ProductionWorkflow{full, full}, model.CoverageFull},
		{"full and empty", []*model.ProductionWorkflow{full, nil}, model.CoveragePartial},
		{"one partial", []*model.ProductionWorkflow{nil, partial}, model.CoveragePartial},
		{"all empty", []*model.ProductionWorkflow{nil, model.NewWorkflow()}, model.CoverageNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []model.Event
			for i, w := range tt.workflows {
				events = append(events, eventAt(string(rune('a'+i)), start, w))
			}
			slot := GroupByStart(events)[0]
			assert.Equal(t, tt.want, slot.Coverage())
		})
	}
}

func TestTimeSlot_IgnoresStaleStoredStatus(t *testing.T) {
	start := time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC)
	stale := model.NewWorkflow()
	stale.CoverageStatus = model.CoverageFull

	slot := GroupByStart([]model.Event{eventAt("e1", start, stale)})[0]
	assert.Equal(t, model.CoverageNone, slot.Coverage())
}
