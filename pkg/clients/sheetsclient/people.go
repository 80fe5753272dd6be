package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emberesports/crewdesk/pkg/core/model"
)

const (
	colID    = "ID"
	colName  = "Name"
	colEmail = "Email"
)

// ListPeople reads the staff roster tab. The first row must name the ID and
// Name columns; an Email column is optional.
func (c *Client) ListPeople(spreadsheetID, tab string) ([]model.Person, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	people, err := parsePeople(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	return people, nil
}

func parsePeople(raw [][]interface{}) ([]model.Person, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	header := raw[0]
	idCol := findColumnIndex(header, colID)
	nameCol := findColumnIndex(header, colName)
	emailCol := findColumnIndex(header, colEmail)
	if idCol == -1 {
		return nil, fmt.Errorf("missing required field in header: %s", colID)
	}
	if nameCol == -1 {
		return nil, fmt.Errorf("missing required field in header: %s", colName)
	}

	people := make([]model.Person, 0, len(raw)-1)
	seen := make(map[model.PersonID]int)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		idText := cellString(row, idCol)
		if idText == "" {
			continue
		}
		id, err := strconv.ParseInt(idText, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q in row %d", idText, i+1)
		}
		if first, dup := seen[model.PersonID(id)]; dup {
			return nil, fmt.Errorf("duplicate id %d in rows %d and %d", id, first, i+1)
		}
		seen[model.PersonID(id)] = i + 1

		people = append(people, model.Person{
			ID:    model.PersonID(id),
			Name:  cellString(row, nameCol),
			Email: cellString(row, emailCol),
		})
	}

	return people, nil
}

// findColumnIndex finds the index of a column by its header name, ignoring case and padding
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if str, ok := cell.(string); ok && strings.EqualFold(strings.TrimSpace(str), columnName) {
			return i
		}
	}
	return -1
}

// cellString returns the trimmed text of a cell. The Sheets API returns
// formatted values as strings but numbers can still arrive as float64.
func cellString(row []interface{}, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	switch v := row[index].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
