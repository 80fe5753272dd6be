package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberesports/crewdesk/pkg/core/services"
)

// DefineEventsCmd creates the defineEvents command
func DefineEventsCmd(app *AppContext) *cobra.Command {
	var fromFlag string

	cmd := &cobra.Command{
		Use:   "defineEvents",
		Short: "Create events for every configured event series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.location()
			from := app.now()
			if fromFlag != "" {
				parsed, err := time.ParseInLocation("2006-01-02", fromFlag, loc)
				if err != nil {
					return fmt.Errorf("--from must be YYYY-MM-DD: %w", err)
				}
				from = parsed
			}

			result, err := services.DefineEvents(app.Ctx, app.Database, app.Logger, app.Cfg.EventSeries, from, loc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Created %d events (%d already existed)\n\n", len(result.Created), len(result.Skipped))
			for _, e := range result.Created {
				fmt.Fprintf(out, "  %s  %-40s %s\n", e.StartAt.In(loc).Format(displayTimeFormat), services.EventLabel(&e), e.ID)
			}
			if len(result.Created) > 0 {
				fmt.Fprintln(out)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Expand series from this date (YYYY-MM-DD, default now)")

	return cmd
}
