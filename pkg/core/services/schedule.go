package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/metrics"
	"github.com/emberesports/crewdesk/pkg/clients/sheetsclient"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
	"github.com/emberesports/crewdesk/pkg/db"
)

const (
	scheduleDayFormat  = "Mon Jan 02 2006"
	scheduleTimeFormat = "15:04 MST"
	unstaffed          = "TBD"
)

// ScheduleStore defines the store operations needed by the schedule selection
type ScheduleStore interface {
	db.EventReader
	ToggleIncludeInSchedule(ctx context.Context, id string) (*model.Event, error)
}

// SchedulePublisher defines the sheets operation used to publish the broadcast schedule
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, schedule *sheetsclient.PublishedSchedule) error
}

// ToggleInclude flips whether an event is part of the public broadcast schedule.
// Coverage is deliberately not checked here.
func ToggleInclude(ctx context.Context, store ScheduleStore, logger *zap.Logger, eventID string) (event *model.Event, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("toggle_include", start, err) }()

	event, err = store.ToggleIncludeInSchedule(ctx, eventID)
	if err != nil {
		return nil, err
	}

	logger.Info("Schedule selection toggled",
		zap.String("event_id", eventID),
		zap.Bool("include", event.IncludeInSchedule))
	return event, nil
}

// SelectableEvents is the pool the schedule selection works from: active events
// with at least one role staffed
func SelectableEvents(ctx context.Context, store db.EventReader, logger *zap.Logger, now time.Time) ([]model.Event, error) {
	events, err := listActive(ctx, store, now)
	if err != nil {
		return nil, err
	}

	pool := staffing.Selectable(events)
	logger.Debug("Selectable events", zap.Int("active", len(events)), zap.Int("selectable", len(pool)))
	return pool, nil
}

// ScheduleEntry is one broadcast in the schedule
type ScheduleEntry struct {
	EventID  string
	StartAt  time.Time
	Time     string
	Match    string
	Coverage model.CoverageStatus
	Producer string
	Observer string
	Casters  []string
}

// ScheduleDay groups the broadcasts of one local calendar day
type ScheduleDay struct {
	Date    string
	Entries []ScheduleEntry
}

// BroadcastSchedule is the public schedule built from the selected events
type BroadcastSchedule struct {
	Days []ScheduleDay
}

// BuildBroadcastSchedule renders the selected events (include flag set and
// coverage not none) grouped by day in loc. Unknown people render as placeholders.
func BuildBroadcastSchedule(events []model.Event, directory *people.Directory, loc *time.Location) *BroadcastSchedule {
	if loc == nil {
		loc = time.UTC
	}

	schedule := &BroadcastSchedule{}
	for _, slot := range staffing.GroupByStart(staffing.Selected(events)) {
		local := slot.StartAt.In(loc)
		date := local.Format(scheduleDayFormat)

		if n := len(schedule.Days); n == 0 || schedule.Days[n-1].Date != date {
			schedule.Days = append(schedule.Days, ScheduleDay{Date: date})
		}
		day := &schedule.Days[len(schedule.Days)-1]

		for _, event := range slot.Events {
			row := coverageRow(event, directory)
			day.Entries = append(day.Entries, ScheduleEntry{
				EventID:  event.ID,
				StartAt:  event.StartAt,
				Time:     local.Format(scheduleTimeFormat),
				Match:    EventLabel(&event),
				Coverage: row.Coverage,
				Producer: row.Producer,
				Observer: row.Observer,
				Casters:  row.Casters,
			})
		}
	}
	return schedule
}

// Empty reports whether no event made it into the schedule
func (s *BroadcastSchedule) Empty() bool {
	return len(s.Days) == 0
}

// Text renders the schedule as plain text for posting in chat
func (s *BroadcastSchedule) Text() string {
	var b strings.Builder
	for i, day := range s.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(day.Date + "\n")
		for _, entry := range day.Entries {
			fmt.Fprintf(&b, "  %s  %s\n", entry.Time, entry.Match)
			fmt.Fprintf(&b, "    Producer: %s | Observer: %s | Casters: %s\n",
				orTBD(entry.Producer), orTBD(entry.Observer), castersText(entry.Casters))
		}
	}
	return b.String()
}

// Sheet converts the schedule into the published sheet layout
func (s *BroadcastSchedule) Sheet() *sheetsclient.PublishedSchedule {
	published := &sheetsclient.PublishedSchedule{}
	for _, day := range s.Days {
		for _, entry := range day.Entries {
			published.Rows = append(published.Rows, sheetsclient.ScheduleRow{
				Date:     day.Date,
				Time:     entry.Time,
				Match:    entry.Match,
				Coverage: string(entry.Coverage),
				Producer: entry.Producer,
				Observer: entry.Observer,
				Casters:  entry.Casters,
			})
		}
	}
	if len(s.Days) > 0 {
		published.Tab = fmt.Sprintf("%s - %s", s.Days[0].Date, s.Days[len(s.Days)-1].Date)
	}
	return published
}

// PublishSchedule builds the broadcast schedule from the active events and writes it to the sheet
func PublishSchedule(
	ctx context.Context,
	store db.EventReader,
	publisher SchedulePublisher,
	logger *zap.Logger,
	directory *people.Directory,
	spreadsheetID string,
	loc *time.Location,
	now time.Time,
) (published *sheetsclient.PublishedSchedule, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp("publish_schedule", start, err) }()

	if spreadsheetID == "" {
		return nil, fmt.Errorf("no schedule sheet configured")
	}

	events, err := listActive(ctx, store, now)
	if err != nil {
		return nil, err
	}

	schedule := BuildBroadcastSchedule(events, directory, loc)
	if schedule.Empty() {
		return nil, fmt.Errorf("no events selected for the schedule")
	}

	published = schedule.Sheet()
	logger.Debug("Publishing schedule", zap.String("tab", published.Tab), zap.Int("rows", len(published.Rows)))

	if err := publisher.PublishSchedule(spreadsheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published", zap.String("tab", published.Tab), zap.Int("rows", len(published.Rows)))
	return published, nil
}

func orTBD(s string) string {
	if s == "" {
		return unstaffed
	}
	return s
}

func castersText(casters []string) string {
	if len(casters) == 0 {
		return unstaffed
	}
	return strings.Join(casters, ", ")
}
