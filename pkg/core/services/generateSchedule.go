package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
	"github.com/jakechorley/shift-rota/pkg/db"
	"github.com/jakechorley/shift-rota/pkg/roster"
)

// GenerateOptions tune a single GenerateSchedule call
type GenerateOptions struct {
	// DryRun skips persistence
	DryRun bool

	// Seed overrides the configured random seed when set
	Seed *int64

	// WeekStart overrides the configured week start when non-zero. Must be a Monday.
	WeekStart time.Time

	// Now is used to pick next Monday when no week start is given. Defaults to time.Now.
	Now func() time.Time
}

// GenerateScheduleResult contains a generated schedule and where it was stored
type GenerateScheduleResult struct {
	RunID     string // empty on dry runs
	Config    scheduler.Config
	WeekStart time.Time
	Dates     map[scheduler.Day]time.Time
	Schedule  *scheduler.Result
	Persisted bool
}

// GenerateScheduleStore defines the database operations needed for generating a schedule
type GenerateScheduleStore interface {
	InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment, warnings []db.Warning) error
}

// GenerateSchedule builds a weekly schedule for the roster document and,
// unless DryRun is set, stores it as a new run
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	doc *roster.Document,
	opts GenerateOptions,
) (*GenerateScheduleResult, error) {
	schedCfg := cfg.SchedulerConfig()
	if opts.Seed != nil {
		schedCfg.RandomSeed = *opts.Seed
	}

	logger.Debug("Starting generateSchedule",
		zap.Int("employees", len(doc.Employees)),
		zap.Int("min_per_shift", schedCfg.MinPerShift),
		zap.Int("max_per_shift", schedCfg.MaxPerShift),
		zap.Int("max_days_per_employee", schedCfg.MaxDaysPerEmployee),
		zap.Int64("seed", schedCfg.RandomSeed),
		zap.Bool("dry_run", opts.DryRun))

	weekStart, err := resolveWeekStart(cfg, opts)
	if err != nil {
		return nil, err
	}
	dates, err := DatesByDay(weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate week dates: %w", err)
	}

	// Step 1: Run the scheduler
	result, err := scheduler.Generate(doc.Employees, doc.RawPreferences(), schedCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}
	logger.Info("Schedule generated",
		zap.Int("roster_size", len(result.Roster)),
		zap.Int("warnings", len(result.Warnings)))

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	// Step 2: Check the hard constraints held
	if violations := scheduler.Audit(result.Schedule, schedCfg); len(violations) > 0 {
		for _, v := range violations {
			logger.Error("Schedule violation",
				zap.String("day", string(v.Day)),
				zap.String("shift", string(v.Shift)),
				zap.String("employee", v.Employee),
				zap.String("description", v.Description))
		}
		return nil, fmt.Errorf("generated schedule broke %d hard constraints", len(violations))
	}

	out := &GenerateScheduleResult{
		Config:    schedCfg,
		WeekStart: weekStart,
		Dates:     dates,
		Schedule:  result,
	}

	if opts.DryRun {
		logger.Info("Dry run - schedule not saved")
		return out, nil
	}

	// Step 3: Persist
	run, assignments, warnings := buildRunRecords(schedCfg, weekStart, dates, result, time.Now())
	if err := database.InsertRun(ctx, run, assignments, warnings); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("Run saved",
		zap.String("run_id", run.ID),
		zap.Int("assignments", len(assignments)),
		zap.Int("warnings", len(warnings)))

	out.RunID = run.ID
	out.Persisted = true
	return out, nil
}

func resolveWeekStart(cfg *config.Config, opts GenerateOptions) (time.Time, error) {
	if !opts.WeekStart.IsZero() {
		return normalizeDate(opts.WeekStart), nil
	}
	if start, ok := cfg.WeekStartDate(); ok {
		return start, nil
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	return NextMonday(now()), nil
}

// buildRunRecords converts a result into db records. Assignment positions
// follow the insertion order within each shift.
func buildRunRecords(
	cfg scheduler.Config,
	weekStart time.Time,
	dates map[scheduler.Day]time.Time,
	result *scheduler.Result,
	createdAt time.Time,
) (*db.Run, []db.Assignment, []db.Warning) {
	run := &db.Run{
		ID:                 uuid.New().String(),
		WeekStart:          weekStart.Format(dateLayout),
		MinPerShift:        cfg.MinPerShift,
		MaxPerShift:        cfg.MaxPerShift,
		MaxDaysPerEmployee: cfg.MaxDaysPerEmployee,
		RandomSeed:         cfg.RandomSeed,
		CreatedAt:          createdAt.UTC().Format(time.RFC3339),
	}

	var assignments []db.Assignment
	for _, day := range scheduler.Days {
		for _, shift := range scheduler.Shifts {
			for i, employee := range result.Schedule[day][shift] {
				assignments = append(assignments, db.Assignment{
					ID:        uuid.New().String(),
					RunID:     run.ID,
					Day:       string(day),
					ShiftDate: dates[day].Format(dateLayout),
					Shift:     string(shift),
					Employee:  employee,
					Position:  i,
				})
			}
		}
	}

	warnings := make([]db.Warning, len(result.Warnings))
	for i, message := range result.Warnings {
		warnings[i] = db.Warning{
			ID:       uuid.New().String(),
			RunID:    run.ID,
			Position: i,
			Message:  message,
		}
	}

	return run, assignments, warnings
}
