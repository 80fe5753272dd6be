package sheetsclient

import (
	"fmt"
)

const colNotes = "Notes"

var scheduleHeader = []interface{}{"Date", "Time", "Match", "Coverage", "Producer", "Observer", "Caster 1", "Caster 2", colNotes}

// ScheduleRow is one broadcast in the published schedule
type ScheduleRow struct {
	Date     string // Format: "Mon Jan 02 2006"
	Time     string // Format: "15:04 MST"
	Match    string
	Coverage string
	Producer string
	Observer string
	Casters  []string
}

// PublishedSchedule is the complete content of one schedule tab
type PublishedSchedule struct {
	Tab  string
	Rows []ScheduleRow
}

// PublishSchedule writes the schedule to its tab, creating the tab when missing.
// Staffing columns are always overwritten; the Notes column is carried over for
// rows whose date, time and match are unchanged.
func (c *Client) PublishSchedule(spreadsheetID string, schedule *PublishedSchedule) error {
	exists, err := c.HasSheet(spreadsheetID, schedule.Tab)
	if err != nil {
		return err
	}

	var existing [][]interface{}
	if exists {
		existing, err = c.GetValues(spreadsheetID, schedule.Tab)
		if err != nil {
			return fmt.Errorf("failed to read existing schedule: %w", err)
		}
	} else if _, err := c.CreateSheet(spreadsheetID, schedule.Tab); err != nil {
		return fmt.Errorf("failed to create tab: %w", err)
	}

	if err := c.ReplaceValues(spreadsheetID, schedule.Tab, buildScheduleValues(schedule, existing)); err != nil {
		return fmt.Errorf("failed to publish schedule: %w", err)
	}
	return nil
}

// buildScheduleValues renders the header and rows, keeping notes from existing content
func buildScheduleValues(schedule *PublishedSchedule, existing [][]interface{}) [][]interface{} {
	notes := existingNotes(existing)

	values := make([][]interface{}, 0, len(schedule.Rows)+1)
	values = append(values, scheduleHeader)
	for _, row := range schedule.Rows {
		casters := make([]interface{}, 2)
		for i := range casters {
			casters[i] = ""
			if i < len(row.Casters) {
				casters[i] = row.Casters[i]
			}
		}

		line := []interface{}{row.Date, row.Time, row.Match, row.Coverage, row.Producer, row.Observer}
		line = append(line, casters...)
		line = append(line, notes[rowKey(row.Date, row.Time, row.Match)])
		values = append(values, line)
	}
	return values
}

// existingNotes maps date|time|match to the Notes cell of a previously published tab
func existingNotes(existing [][]interface{}) map[string]string {
	notes := make(map[string]string)
	if len(existing) == 0 {
		return notes
	}

	header := existing[0]
	dateCol := findColumnIndex(header, "Date")
	timeCol := findColumnIndex(header, "Time")
	matchCol := findColumnIndex(header, "Match")
	notesCol := findColumnIndex(header, colNotes)
	if dateCol == -1 || timeCol == -1 || matchCol == -1 || notesCol == -1 {
		return notes
	}

	for _, row := range existing[1:] {
		if note := cellString(row, notesCol); note != "" {
			notes[rowKey(cellString(row, dateCol), cellString(row, timeCol), cellString(row, matchCol))] = note
		}
	}
	return notes
}

func rowKey(date, clock, match string) string {
	return date + "|" + clock + "|" + match
}
