package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
	"github.com/jakechorley/shift-rota/pkg/db"
)

// ScheduleView is a persisted run rebuilt for display
type ScheduleView struct {
	Run        db.Run
	Dates      map[scheduler.Day]time.Time
	Schedule   scheduler.Schedule
	Warnings   []string
	DaysWorked map[string]int
}

// ViewScheduleStore defines the database operations needed for viewing a schedule
type ViewScheduleStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	GetRun(ctx context.Context, id string) (*db.Run, error)
	GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error)
	GetWarnings(ctx context.Context, runID string) ([]db.Warning, error)
}

// ViewSchedule loads a stored run. An empty runID selects the latest run.
func ViewSchedule(ctx context.Context, database ViewScheduleStore, logger *zap.Logger, runID string) (*ScheduleView, error) {
	logger.Debug("Starting viewSchedule", zap.String("run_id", runID))

	var run *db.Run
	if runID == "" {
		runs, err := database.GetRuns(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch runs: %w", err)
		}
		if len(runs) == 0 {
			return nil, fmt.Errorf("no runs found - please run schedule first")
		}
		run = findLatestRun(runs)
		logger.Debug("Using latest run", zap.String("run_id", run.ID))
	} else {
		var err error
		run, err = database.GetRun(ctx, runID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch run: %w", err)
		}
	}

	assignments, err := database.GetAssignments(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	warnings, err := database.GetWarnings(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warnings: %w", err)
	}
	logger.Debug("Loaded run",
		zap.String("run_id", run.ID),
		zap.Int("assignments", len(assignments)),
		zap.Int("warnings", len(warnings)))

	sched, daysWorked, err := rebuildSchedule(assignments)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild run %s: %w", run.ID, err)
	}

	weekStart, err := time.Parse(dateLayout, run.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week start: %w", err)
	}
	dates, err := DatesByDay(weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate week dates: %w", err)
	}

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].Position < warnings[j].Position
	})
	messages := make([]string, len(warnings))
	for i, w := range warnings {
		messages[i] = w.Message
	}

	return &ScheduleView{
		Run:        *run,
		Dates:      dates,
		Schedule:   sched,
		Warnings:   messages,
		DaysWorked: daysWorked,
	}, nil
}

// rebuildSchedule places assignments back into a schedule in stored position order
func rebuildSchedule(assignments []db.Assignment) (scheduler.Schedule, map[string]int, error) {
	sorted := make([]db.Assignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	sched := scheduler.NewSchedule()
	daysWorked := make(map[string]int)
	for _, a := range sorted {
		day, ok := scheduler.ParseDay(a.Day)
		if !ok {
			return nil, nil, fmt.Errorf("unknown day %q in assignment %s", a.Day, a.ID)
		}
		shift, ok := scheduler.ParseShift(a.Shift)
		if !ok {
			return nil, nil, fmt.Errorf("unknown shift %q in assignment %s", a.Shift, a.ID)
		}
		sched[day][shift] = append(sched[day][shift], a.Employee)
		daysWorked[a.Employee]++
	}

	return sched, daysWorked, nil
}

// findLatestRun finds the run created most recently
func findLatestRun(runs []db.Run) *db.Run {
	if len(runs) == 0 {
		return nil
	}

	latest := &runs[0]
	latestTime, _ := time.Parse(time.RFC3339, latest.CreatedAt)
	for i := 1; i < len(runs); i++ {
		current, err := time.Parse(time.RFC3339, runs[i].CreatedAt)
		if err != nil {
			continue
		}
		if !current.Before(latestTime) {
			latest = &runs[i]
			latestTime = current
		}
	}

	return latest
}
