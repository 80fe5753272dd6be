package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	var style string
	var noNotify bool

	cmd := &cobra.Command{
		Use:   "assign <event_id> <role> <person_id>",
		Short: "Confirm a person in a role on an event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRole(args[1])
			if err != nil {
				return err
			}
			personID, err := parsePersonID(args[2])
			if err != nil {
				return err
			}

			notify := app.Notifications()
			if noNotify {
				notify = nil
			}

			result, err := services.Assign(app.Ctx, app.Database, app.Logger, notify, args[0], role, model.PersonRef{ID: personID, Style: style})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			name := app.Directory.DisplayName(personID)
			if !result.Changed {
				fmt.Fprintf(out, "%s is already assigned as %s\n", name, role)
				return nil
			}

			fmt.Fprintf(out, "✓ %s assigned as %s for %s (coverage: %s)\n",
				name, role, services.EventLabel(result.Event), staffing.Coverage(result.Event.Workflow))
			switch {
			case result.NotifyErr != nil:
				fmt.Fprintf(out, "  ⚠ notification email failed: %v\n", result.NotifyErr)
			case result.Notified:
				fmt.Fprintln(out, "  ✉ notification email sent")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Casting style (casters only)")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Do not email the assigned person")

	return cmd
}

// UnassignCmd creates the unassign command
func UnassignCmd(app *AppContext) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "unassign <event_id> <role> [person_id]",
		Short: "Remove an occupant from a role on an event",
		Long: `Remove an occupant from a role. The occupant is matched by person id;
when no person id is given or it is not assigned, --index selects the occupant by position.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRole(args[1])
			if err != nil {
				return err
			}

			var personID model.PersonID
			if len(args) == 3 {
				personID, err = parsePersonID(args[2])
				if err != nil {
					return err
				}
			} else if index < 0 {
				return fmt.Errorf("a person id or --index is required")
			}

			event, removed, err := services.Unassign(app.Ctx, app.Database, app.Logger, args[0], role, personID, index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if removed == nil {
				fmt.Fprintf(out, "Nobody to remove from %s on %s\n", role, services.EventLabel(event))
				return nil
			}
			fmt.Fprintf(out, "✓ %s removed from %s on %s (coverage: %s)\n",
				app.Directory.Label(*removed), role, services.EventLabel(event), staffing.Coverage(event.Workflow))
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "Zero-based position of the occupant to remove")

	return cmd
}
