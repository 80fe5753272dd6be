package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/config"
	"github.com/emberesports/crewdesk/pkg/clients/gmailclient"
	"github.com/emberesports/crewdesk/pkg/clients/sheetsclient"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env          string
	Cfg          *config.Config
	SheetsClient *sheetsclient.Client
	GmailClient  *gmailclient.Client
	Database     db.Database
	Directory    *people.Directory
	Logger       *zap.Logger
	Ctx          context.Context

	// Now is the clock used for the active working set; nil means time.Now
	Now func() time.Time
}

func (app *AppContext) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func (app *AppContext) location() *time.Location {
	if app.Cfg == nil {
		return time.UTC
	}
	return app.Cfg.Location()
}

// Notifications returns the assignment email settings, nil when email is not configured
func (app *AppContext) Notifications() *services.Notifications {
	if app.GmailClient == nil || app.Cfg == nil || !app.Cfg.NotifyAssignments {
		return nil
	}
	return &services.Notifications{
		Sender:    app.GmailClient,
		Directory: app.Directory,
		Location:  app.location(),
	}
}

// PeopleSource defines the roster sheet read used to build the directory
type PeopleSource interface {
	ListPeople(spreadsheetID, tab string) ([]model.Person, error)
}

// BuildDirectory merges the inline config roster with the roster sheet.
// Sheet entries win when both list the same id.
func BuildDirectory(cfg *config.Config, source PeopleSource, logger *zap.Logger) (*people.Directory, error) {
	inline := make([]model.Person, 0, len(cfg.Roster))
	for _, entry := range cfg.Roster {
		inline = append(inline, model.Person{
			ID:    model.PersonID(entry.ID),
			Name:  entry.Name,
			Email: entry.Email,
		})
	}

	if cfg.RosterSheetID == "" || source == nil {
		return people.NewDirectory(inline), nil
	}

	sheet, err := source.ListPeople(cfg.RosterSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster sheet: %w", err)
	}
	logger.Debug("Loaded roster sheet", zap.Int("inline", len(inline)), zap.Int("sheet", len(sheet)))

	return people.NewDirectory(inline, sheet), nil
}

func parseRole(s string) (model.Role, error) {
	return model.ParseRole(strings.ToLower(strings.TrimSpace(s)))
}

func parsePersonID(s string) (model.PersonID, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("person id must be a positive number, got %q", s)
	}
	return model.PersonID(id), nil
}

// parseSlotTime accepts RFC3339 or "2006-01-02 15:04" in the display timezone
func parseSlotTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("start time must be RFC3339 or \"YYYY-MM-DD HH:MM\", got %q", s)
	}
	return t, nil
}

func orTBD(s string) string {
	if s == "" {
		return "TBD"
	}
	return s
}

const displayTimeFormat = "Mon Jan 02 15:04 MST"
