package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-rota/pkg/core/services"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRuns",
		Short: "List stored schedule runs, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listRuns command")

			runs, err := services.ListRuns(app.Ctx, app.Store, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs found - run schedule to create one.")
				return nil
			}

			fmt.Fprintf(out, "\nFound %d runs:\n\n", len(runs))
			fmt.Fprintf(out, "  %-36s  %-10s  %-25s  %s\n", "ID", "Week", "Created", "Min/Max/Days/Seed")
			for _, run := range runs {
				fmt.Fprintf(out, "  %-36s  %-10s  %-25s  %d/%d/%d/%d\n",
					run.ID,
					run.WeekStart,
					run.CreatedAt,
					run.MinPerShift,
					run.MaxPerShift,
					run.MaxDaysPerEmployee,
					run.RandomSeed,
				)
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
