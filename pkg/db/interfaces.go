package db

import (
	"context"
	"errors"
)

// ErrRunNotFound is returned when a run ID has no record
var ErrRunNotFound = errors.New("run not found")

// RunStore defines the interface for schedule run database operations.
// Both the in-memory MemoryStore and postgres.DB implement this interface.
type RunStore interface {
	GetRuns(ctx context.Context) ([]Run, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	GetAssignments(ctx context.Context, runID string) ([]Assignment, error)
	GetWarnings(ctx context.Context, runID string) ([]Warning, error)

	// InsertRun stores a run with its assignments and warnings atomically
	InsertRun(ctx context.Context, run *Run, assignments []Assignment, warnings []Warning) error
}
