package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberesports/crewdesk/pkg/core/services"
)

// ListSlotsCmd creates the listSlots command
func ListSlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSlots",
		Short: "List upcoming time slots with signup and assignment counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := services.ListSlots(app.Ctx, app.Database, app.Logger, app.now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintln(out, "No upcoming events.")
				return nil
			}

			loc := app.location()
			fmt.Fprintf(out, "\nFound %d time slots:\n\n", len(slots))
			for _, slot := range slots {
				fmt.Fprintf(out, "%s  [%s]  observers %d, producers %d, casters %d, assigned %d\n",
					slot.StartAt.In(loc).Format(displayTimeFormat),
					slot.Coverage,
					slot.ObserverSignups,
					slot.ProducerSignups,
					slot.CasterSignups,
					slot.Assigned)
				for _, e := range slot.Events {
					fmt.Fprintf(out, "    %s  %s\n", e.ID, services.EventLabel(&e))
				}
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
