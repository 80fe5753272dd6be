package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/core/suggest/criteria"
)

// SuggestCmd creates the suggest command
func SuggestCmd(app *AppContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <event_id>",
		Short: "Rank signed-up people for the open roles of an event",
		Long: `Rank the people signed up for each open role of an event.

Candidates already assigned to a simultaneous event are left out. The rest are
scored on how few assignments they hold, how far their nearest other broadcast
is, and (for casters) how well their style pairs with the caster already on the desk.
Nothing is assigned; use the assign command to act on a suggestion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := services.SuggestAssignments(app.Ctx, app.Database, app.Logger, args[0], app.now(), criteria.Defaults(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(suggestions) == 0 {
				fmt.Fprintln(out, "Every role is filled.")
				return nil
			}

			for _, s := range suggestions {
				fmt.Fprintf(out, "\n%s (%d open)\n", s.Role, s.Open)
				if len(s.Candidates) == 0 {
					fmt.Fprintln(out, "  No eligible signups.")
					continue
				}
				for i, c := range s.Candidates {
					fmt.Fprintf(out, "  %d. %-24s score %.2f  workload %d\n", i+1, app.Directory.Label(c.Ref), c.Score, c.Workload)
				}
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 3, "Maximum candidates per role (0 for all)")

	return cmd
}
