package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/core/services"
	"github.com/jakechorley/shift-rota/pkg/roster"
)

// CheckFeasibilityCmd creates the checkFeasibility command
func CheckFeasibilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkFeasibility <roster_file>",
		Short: "Check whether a roster can staff every shift to the configured minimum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("checkFeasibility command", zap.String("roster_file", args[0]))

			doc, err := roster.LoadFile(args[0])
			if err != nil {
				return err
			}

			schedCfg := app.Cfg.SchedulerConfig()
			report, err := services.CheckFeasibility(schedCfg, doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nEmployees:             %d\n", report.Employees)
			fmt.Fprintf(out, "Required assignments:  %d (%d per shift)\n", report.Required, schedCfg.MinPerShift)
			fmt.Fprintf(out, "Available assignments: %d (%d days each)\n\n", report.Supply, schedCfg.MaxDaysPerEmployee)

			if report.Feasible {
				fmt.Fprintf(out, "%s✓ Roster can meet minimum staffing%s\n", colorGreen, colorReset)
				return nil
			}

			fmt.Fprintf(out, "%s✗ Roster cannot meet minimum staffing%s\n", colorRed, colorReset)
			fmt.Fprintf(out, "  Short by %d assignments. Add at least %d employees.\n",
				report.Infeasible.Deficit, report.Infeasible.SuggestedEmployees)
			return nil
		},
	}
}
