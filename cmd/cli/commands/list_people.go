package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListPeopleCmd creates the listPeople command
func ListPeopleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPeople",
		Short: "List everyone in the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster := app.Directory.All()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nFound %d people:\n\n", len(roster))
			for _, p := range roster {
				email := p.Email
				if email == "" {
					email = "no email"
				}
				fmt.Fprintf(out, "- %s (#%d) - %s\n", p.Name, p.ID, email)
			}

			return nil
		},
	}
}
