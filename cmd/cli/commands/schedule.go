package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/services"
)

// ToggleScheduleCmd creates the toggleSchedule command
func ToggleScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggleSchedule <event_id>",
		Short: "Add an event to the broadcast schedule, or remove it if already included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := services.ToggleInclude(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			state := "removed from"
			if event.IncludeInSchedule {
				state = "added to"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s the broadcast schedule\n", services.EventLabel(event), state)
			return nil
		},
	}
}

// ViewScheduleCmd creates the viewSchedule command
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	var selectable bool

	cmd := &cobra.Command{
		Use:   "viewSchedule",
		Short: "Print the broadcast schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := services.SelectableEvents(app.Ctx, app.Database, app.Logger, app.now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if selectable {
				loc := app.location()
				fmt.Fprintf(out, "\n%d events can be scheduled:\n\n", len(events))
				for _, e := range events {
					mark := " "
					if e.IncludeInSchedule {
						mark = "x"
					}
					fmt.Fprintf(out, "  [%s] %s  %s  %s\n", mark, e.StartAt.In(loc).Format(displayTimeFormat), services.EventLabel(&e), e.ID)
				}
				fmt.Fprintln(out)
				return nil
			}

			schedule := services.BuildBroadcastSchedule(events, app.Directory, app.location())
			if schedule.Empty() {
				fmt.Fprintln(out, "No events selected for the schedule. Use toggleSchedule to add some.")
				return nil
			}
			fmt.Fprint(out, schedule.Text())
			return nil
		},
	}

	cmd.Flags().BoolVar(&selectable, "selectable", false, "List the events that can be added instead")

	return cmd
}

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule",
		Short: "Publish the broadcast schedule to the schedule Google Sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.SheetsClient == nil {
				return fmt.Errorf("no schedule sheet configured")
			}

			published, err := services.PublishSchedule(app.Ctx, app.Database, app.SheetsClient, app.Logger,
				app.Directory, app.Cfg.ScheduleSheetID, app.location(), app.now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Published %d broadcasts to tab %q\n", len(published.Rows), published.Tab)
			return nil
		},
	}
}

// SetPriorityCmd creates the setPriority command
func SetPriorityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setPriority <event_id> <none|low|medium|high|urgent>",
		Short: "Set the staffing priority of an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority := model.Priority(args[1])
			if !priority.IsValid() {
				return fmt.Errorf("invalid priority %q", args[1])
			}

			event, err := services.SetPriority(app.Ctx, app.Database, app.Logger, args[0], priority)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s priority set to %s\n", services.EventLabel(event), event.Workflow.Priority)
			return nil
		},
	}
}
