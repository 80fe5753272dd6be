package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/services"
)

// SignupCmd creates the signup command
func SignupCmd(app *AppContext) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "signup <event_id> <role> <person_id>",
		Short: "Record that a person is available for a role on an event",
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

			event, err := services.AddSignup(app.Ctx, app.Database, app.Logger, args[0], role, model.PersonRef{ID: personID, Style: style})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s signed up as %s for %s (%d %s signups)\n",
				app.Directory.DisplayName(personID), role, services.EventLabel(event), len(event.Workflow.Signups(role)), role)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Casting style (casters only, e.g. play-by-play, color)")

	return cmd
}

// SignupSlotCmd creates the signupSlot command
func SignupSlotCmd(app *AppContext) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "signupSlot <start_time> <role> <person_id>",
		Short: "Sign a person up for a role on every event of a time slot",
		Long: `Sign a person up for a role on every event starting at the given time.
The start time is RFC3339 or "YYYY-MM-DD HH:MM" in the configured timezone.
Each event is signed up independently; failures are reported per event.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := parseSlotTime(args[0], app.location())
			if err != nil {
				return err
			}
			role, err := parseRole(args[1])
			if err != nil {
				return err
			}
			personID, err := parsePersonID(args[2])
			if err != nil {
				return err
			}

			results, err := services.SignupForSlot(app.Ctx, app.Database, app.Logger, app.now(), startAt, role, model.PersonRef{ID: personID, Style: style})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results.Results {
				if r.Err != nil {
					fmt.Fprintf(out, "  ❌ %s: %v\n", r.EventID, r.Err)
					continue
				}
				fmt.Fprintf(out, "  ✓ %s: %s\n", r.EventID, services.EventLabel(r.Event))
			}

			if failed := results.Failed(); failed > 0 {
				return fmt.Errorf("signup failed on %d of %d events", failed, len(results.Results))
			}
			fmt.Fprintf(out, "\n✓ %s signed up as %s on %d events\n",
				app.Directory.DisplayName(personID), role, len(results.Results))
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Casting style (casters only)")

	return cmd
}

// WithdrawCmd creates the withdraw command
func WithdrawCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <event_id> <role> <person_id>",
		Short: "Remove a person's signup for a role on an event",
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

			event, err := services.RemoveSignup(app.Ctx, app.Database, app.Logger, args[0], role, personID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s withdrawn from %s on %s\n",
				app.Directory.DisplayName(personID), role, services.EventLabel(event))
			return nil
		},
	}
}
