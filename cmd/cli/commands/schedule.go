package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/core/services"
	"github.com/jakechorley/shift-rota/pkg/roster"
)

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <roster_file>",
		Short: "Generate a weekly schedule from a roster and preferences file",
		Long: `Generate a weekly schedule from a YAML or JSON roster file.

The file lists employees and, optionally, each employee's preferred shift per day:

  employees: [Alice, Bob]
  preferences:
    Alice:
      Mon: morning
      Tue: [evening, afternoon]

Unless --dry-run is set the schedule is stored and can be viewed again with viewSchedule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			weekStart, _ := cmd.Flags().GetString("week-start")

			app.Logger.Debug("schedule command",
				zap.String("roster_file", args[0]),
				zap.Bool("dry_run", dryRun))

			doc, err := roster.LoadFile(args[0])
			if err != nil {
				return err
			}

			opts := services.GenerateOptions{DryRun: dryRun}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				opts.Seed = &seed
			}
			if weekStart != "" {
				opts.WeekStart, err = time.Parse(config.WeekStartLayout, weekStart)
				if err != nil {
					return fmt.Errorf("week-start must be a date like 2025-01-06: %w", err)
				}
			}

			result, err := services.GenerateSchedule(app.Ctx, app.Store, app.Cfg, app.Logger, doc, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Persisted {
				fmt.Fprintf(out, "\n%s✓ Schedule generated and saved%s\n", colorGreen, colorReset)
				fmt.Fprintf(out, "Run ID:     %s\n", result.RunID)
			} else {
				fmt.Fprintf(out, "\n%s✓ Schedule generated (dry run, not saved)%s\n", colorGreen, colorReset)
			}
			fmt.Fprintf(out, "Week Start: %s\n", result.WeekStart.Format(dateLayout))
			fmt.Fprintf(out, "Seed:       %d\n", result.Config.RandomSeed)

			printSchedule(out, result.Schedule.Schedule, result.Dates)
			printWarnings(out, result.Schedule.Warnings)
			printDaysWorked(out, result.Schedule.Roster, result.Schedule.DaysWorked, result.Config.MaxDaysPerEmployee)

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Generate without saving to the database")
	cmd.Flags().Int64("seed", 0, "Seed for random decisions (defaults to randomSeed from config)")
	cmd.Flags().String("week-start", "", "Monday the schedule starts on, YYYY-MM-DD (defaults to weekStart from config or next Monday)")

	return cmd
}
