package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/core/services"
)

// ViewScheduleCmd creates the viewSchedule command
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewSchedule [run_id]",
		Short: "View a stored schedule (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			app.Logger.Debug("viewSchedule command", zap.String("run_id", runID))

			view, err := services.ViewSchedule(app.Ctx, app.Store, app.Logger, runID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nRun ID:     %s\n", view.Run.ID)
			fmt.Fprintf(out, "Created:    %s\n", view.Run.CreatedAt)
			fmt.Fprintf(out, "Week Start: %s\n", view.Run.WeekStart)
			fmt.Fprintf(out, "Config:     min %d, max %d, max days %d, seed %d\n",
				view.Run.MinPerShift, view.Run.MaxPerShift, view.Run.MaxDaysPerEmployee, view.Run.RandomSeed)

			printSchedule(out, view.Schedule, view.Dates)
			printWarnings(out, view.Warnings)

			return nil
		},
	}
}
