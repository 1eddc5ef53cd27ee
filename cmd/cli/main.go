package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/cmd/cli/commands"
	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/db"
	"github.com/jakechorley/shift-rota/pkg/postgres"
	"github.com/jakechorley/shift-rota/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
	pgDB    *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Shift Rota CLI - Generate weekly employee schedules",
		Long:  `A CLI tool for generating weekly shift schedules from employee rosters and preferences, and for viewing stored runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pgDB != nil {
				pgDB.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.ScheduleCmd(app))
	rootCmd.AddCommand(commands.ViewScheduleCmd(app))
	rootCmd.AddCommand(commands.ListRunsCmd(app))
	rootCmd.AddCommand(commands.CheckFeasibilityCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the run store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Missing .env is fine; real environment variables still apply
	_ = godotenv.Load(".env")

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if errors.Is(err, config.ErrNotFound) {
		app.Logger.Warn("No config file found, using defaults")
		app.Cfg = config.DefaultFromEnv()
	} else if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("min_per_shift", app.Cfg.MinPerShift),
		zap.Int("max_per_shift", app.Cfg.MaxPerShift),
		zap.Int("max_days_per_employee", app.Cfg.MaxDaysPerEmployee))

	// Initialize run store
	if app.Cfg.DatabaseURL == "" {
		app.Logger.Info("No database configured, runs are kept in memory for this process only")
		app.Store = db.NewMemoryStore()
		return nil
	}

	app.Logger.Info("Connecting to database")
	pgDB, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := pgDB.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Store = pgDB
	app.Logger.Info("Database initialized successfully")

	return nil
}
