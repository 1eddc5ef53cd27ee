package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/db"
)

const dateLayout = "2006-01-02"

var _ db.RunStore = (*DB)(nil)

// GetRuns retrieves all run records, oldest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, week_start, min_per_shift, max_per_shift, max_days_per_employee, random_seed, created_at
		FROM schedule_run
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun retrieves one run record by ID
func (d *DB) GetRun(ctx context.Context, id string) (*db.Run, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, week_start, min_per_shift, max_per_shift, max_days_per_employee, random_seed, created_at
		FROM schedule_run
		WHERE id = $1
	`, id)

	r, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanRun(row pgx.Row) (*db.Run, error) {
	var r db.Run
	var weekStart, createdAt time.Time
	err := row.Scan(&r.ID, &weekStart, &r.MinPerShift, &r.MaxPerShift, &r.MaxDaysPerEmployee, &r.RandomSeed, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	r.WeekStart = weekStart.Format(dateLayout)
	r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &r, nil
}

// GetAssignments retrieves the assignments of a run in insertion order
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, day, shift_date, shift, employee, position
		FROM schedule_assignment
		WHERE run_id = $1
		ORDER BY shift_date, shift, position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var shiftDate time.Time
		if err := rows.Scan(&a.ID, &a.RunID, &a.Day, &shiftDate, &a.Shift, &a.Employee, &a.Position); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.ShiftDate = shiftDate.Format(dateLayout)
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// GetWarnings retrieves the warnings of a run in the order they were raised
func (d *DB) GetWarnings(ctx context.Context, runID string) ([]db.Warning, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, position, message
		FROM schedule_warning
		WHERE run_id = $1
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query warnings: %w", err)
	}
	defer rows.Close()

	var warnings []db.Warning
	for rows.Next() {
		var w db.Warning
		if err := rows.Scan(&w.ID, &w.RunID, &w.Position, &w.Message); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		warnings = append(warnings, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warnings: %w", err)
	}

	return warnings, nil
}

// InsertRun inserts a run with its assignments and warnings in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment, warnings []db.Warning) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedule_run (id, week_start, min_per_shift, max_per_shift, max_days_per_employee, random_seed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.WeekStart, run.MinPerShift, run.MaxPerShift, run.MaxDaysPerEmployee, run.RandomSeed, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, a := range assignments {
		batch.Queue(`
			INSERT INTO schedule_assignment (id, run_id, day, shift_date, shift, employee, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, a.ID, a.RunID, a.Day, a.ShiftDate, a.Shift, a.Employee, a.Position)
	}
	for _, w := range warnings {
		batch.Queue(`
			INSERT INTO schedule_warning (id, run_id, position, message)
			VALUES ($1, $2, $3, $4)
		`, w.ID, w.RunID, w.Position, w.Message)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert run rows: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	d.logger.Debug("Inserted run",
		zap.String("run_id", run.ID),
		zap.Int("assignments", len(assignments)),
		zap.Int("warnings", len(warnings)))
	return nil
}
