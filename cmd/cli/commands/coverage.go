package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/core/suggest"
	"github.com/emberesports/crewdesk/pkg/db"
)

// CoverageCmd creates the coverage command
func CoverageCmd(app *AppContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Show who is staffing each upcoming event and which roles are open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := db.ActiveFilter(app.now())
			if all {
				filter = db.EventFilter{}
			}

			rows, err := services.Coverage(app.Ctx, app.Database, app.Logger, app.Directory, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No events.")
				return nil
			}

			loc := app.location()
			for _, row := range rows {
				fmt.Fprintf(out, "\n%s  %s  [%s]\n", row.Event.StartAt.In(loc).Format(displayTimeFormat), services.EventLabel(&row.Event), row.Coverage)
				fmt.Fprintf(out, "  id: %s  priority: %s\n", row.Event.ID, row.Event.WorkflowOrEmpty().Priority)
				fmt.Fprintf(out, "  Observer: %s | Producer: %s | Casters: %s\n",
					orTBD(row.Observer), orTBD(row.Producer), orTBD(strings.Join(row.Casters, ", ")))
				if len(row.Missing) > 0 {
					missing := make([]string, len(row.Missing))
					for i, role := range row.Missing {
						missing[i] = string(role)
					}
					fmt.Fprintf(out, "  Missing: %s\n", strings.Join(missing, ", "))
				}
			}
			fmt.Fprintln(out)

			events := make([]model.Event, len(rows))
			for i, row := range rows {
				events[i] = row.Event
			}
			for _, b := range suggest.DoubleBookings(events) {
				fmt.Fprintf(out, "Warning: %s is assigned to %d events at %s (%s)\n",
					app.Directory.DisplayName(b.PersonID), len(b.EventIDs),
					b.StartAt.In(loc).Format(displayTimeFormat), strings.Join(b.EventIDs, ", "))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include past, archived and complete events")

	return cmd
}

// WorkloadCmd creates the workload command
func WorkloadCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "workload",
		Short: "Show how many upcoming assignments each person holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := services.ComputeWorkload(app.Ctx, app.Database, app.Logger, app.now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Nobody is assigned to an upcoming event.")
				return nil
			}

			fmt.Fprintf(out, "\n%-24s %8s %8s %8s %6s\n", "Person", "Observer", "Producer", "Caster", "Total")
			for _, e := range entries {
				fmt.Fprintf(out, "%-24s %8d %8d %8d %6d\n",
					app.Directory.DisplayName(e.PersonID), e.ObserverCount, e.ProducerCount, e.CasterCount, e.TotalCount)
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
