package db

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(id string) (*Run, []Assignment, []Warning) {
	run := &Run{
		ID:                 id,
		WeekStart:          "2025-01-06",
		MinPerShift:        2,
		MaxPerShift:        4,
		MaxDaysPerEmployee: 5,
		RandomSeed:         7,
		CreatedAt:          "2025-01-01T10:00:00Z",
	}
	assignments := []Assignment{
		{ID: id + "-a1", RunID: id, Day: "Mon", ShiftDate: "2025-01-06", Shift: "morning", Employee: "Alice", Position: 0},
		{ID: id + "-a2", RunID: id, Day: "Mon", ShiftDate: "2025-01-06", Shift: "morning", Employee: "Diana", Position: 1},
	}
	warnings := []Warning{
		{ID: id + "-w1", RunID: id, Position: 0, Message: "Could not meet min staffing for Sun evening (1/2). Consider more staff or relaxing caps."},
	}
	return run, assignments, warnings
}

func TestMemoryStore_InsertAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	run, assignments, warnings := sampleRun("run-1")
	require.NoError(t, store.InsertRun(ctx, run, assignments, warnings))

	runs, err := store.GetRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, *run, runs[0])

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, got)

	gotAssignments, err := store.GetAssignments(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, assignments, gotAssignments)

	gotWarnings, err := store.GetWarnings(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, warnings, gotWarnings)
}

func TestMemoryStore_GetRunNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestMemoryStore_UnknownRunHasNoChildren(t *testing.T) {
	store := NewMemoryStore()

	assignments, err := store.GetAssignments(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, assignments)

	warnings, err := store.GetWarnings(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestMemoryStore_DuplicateRunRejected(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	run, assignments, warnings := sampleRun("run-1")
	require.NoError(t, store.InsertRun(ctx, run, assignments, warnings))

	err := store.InsertRun(ctx, run, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")

	gotAssignments, err := store.GetAssignments(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, gotAssignments, 2, "original assignments must be untouched")
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	run, assignments, warnings := sampleRun("run-1")
	require.NoError(t, store.InsertRun(ctx, run, assignments, warnings))

	assignments[0].Employee = "Mallory"
	got, err := store.GetAssignments(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got[0].Employee)

	got[1].Employee = "Mallory"
	again, err := store.GetAssignments(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Diana", again[1].Employee)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, _, _ := sampleRun("run-1")
	err := store.InsertRun(ctx, run, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_ConcurrentInserts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			run, assignments, warnings := sampleRun(fmt.Sprintf("run-%d", i))
			assert.NoError(t, store.InsertRun(ctx, run, assignments, warnings))
		}(i)
	}
	wg.Wait()

	runs, err := store.GetRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 20)
}
