package db

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryStore keeps runs in process memory. It is used when no database is
// configured and in tests. Safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	runs        []Run
	assignments map[string][]Assignment
	warnings    map[string][]Warning
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assignments: make(map[string][]Assignment),
		warnings:    make(map[string][]Warning),
	}
}

// GetRuns returns all runs in insertion order
func (m *MemoryStore) GetRuns(ctx context.Context) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.runs), nil
}

// GetRun returns one run by ID
func (m *MemoryStore) GetRun(ctx context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.runs {
		if r.ID == id {
			run := r
			return &run, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
}

// GetAssignments returns a run's assignments in insertion order
func (m *MemoryStore) GetAssignments(ctx context.Context, runID string) ([]Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.assignments[runID]), nil
}

// GetWarnings returns a run's warnings in insertion order
func (m *MemoryStore) GetWarnings(ctx context.Context, runID string) ([]Warning, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.warnings[runID]), nil
}

// InsertRun stores a run and its children. A duplicate run ID is rejected
// and nothing is stored.
func (m *MemoryStore) InsertRun(ctx context.Context, run *Run, assignments []Assignment, warnings []Warning) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.runs {
		if existing.ID == run.ID {
			return fmt.Errorf("failed to insert run: duplicate id %s", run.ID)
		}
	}

	m.runs = append(m.runs, *run)
	m.assignments[run.ID] = slices.Clone(assignments)
	m.warnings[run.ID] = slices.Clone(warnings)

	return nil
}
