package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
	"github.com/jakechorley/shift-rota/pkg/db"
	"github.com/jakechorley/shift-rota/pkg/roster"
)

// mockRunStore implements a test double for db.RunStore
type mockRunStore struct {
	runs        []db.Run
	assignments map[string][]db.Assignment
	warnings    map[string][]db.Warning

	getRunsErr error
	insertErr  error
	inserted   int
}

func (m *mockRunStore) GetRuns(ctx context.Context) ([]db.Run, error) {
	if m.getRunsErr != nil {
		return nil, m.getRunsErr
	}
	return m.runs, nil
}

func (m *mockRunStore) GetRun(ctx context.Context, id string) (*db.Run, error) {
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, db.ErrRunNotFound
}

func (m *mockRunStore) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	return m.assignments[runID], nil
}

func (m *mockRunStore) GetWarnings(ctx context.Context, runID string) ([]db.Warning, error) {
	return m.warnings[runID], nil
}

func (m *mockRunStore) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment, warnings []db.Warning) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if m.assignments == nil {
		m.assignments = make(map[string][]db.Assignment)
		m.warnings = make(map[string][]db.Warning)
	}
	m.runs = append(m.runs, *run)
	m.assignments[run.ID] = assignments
	m.warnings[run.ID] = warnings
	m.inserted++
	return nil
}

var errStore = errors.New("store unavailable")

// exampleDocument is a ten person roster with mixed preferences
func exampleDocument() *roster.Document {
	s := roster.Single
	r := roster.Ranked
	return &roster.Document{
		Employees: []string{
			"Alice", "Bob", "Charlie", "Diana", "Evan",
			"Farah", "Grace", "Henry", "Iris", "Jamal",
		},
		Preferences: map[string]map[string]roster.Value{
			"Alice":   {"Mon": r("morning", "afternoon"), "Tue": s("morning"), "Wed": s("morning"), "Thu": s("morning"), "Fri": s("morning")},
			"Bob":     {"Mon": s("evening"), "Tue": r("evening", "afternoon"), "Wed": s("evening"), "Thu": s("evening"), "Fri": s("evening")},
			"Charlie": {"Mon": s("afternoon"), "Tue": s("afternoon"), "Wed": s("afternoon"), "Thu": s("afternoon"), "Fri": s("afternoon")},
			"Diana":   {"Mon": s("morning"), "Tue": s("morning"), "Wed": s("evening"), "Sat": r("morning", "evening")},
			"Evan":    {"Tue": s("morning"), "Wed": s("morning"), "Thu": s("evening"), "Sun": s("morning")},
			"Farah":   {"Mon": s("evening"), "Wed": r("morning", "evening"), "Fri": s("afternoon"), "Sun": s("evening")},
			"Grace":   {"Thu": r("morning", "afternoon"), "Fri": s("morning"), "Sat": s("afternoon")},
			"Henry":   {"Mon": s("afternoon"), "Tue": r("morning", "afternoon"), "Sat": s("evening")},
			"Iris":    {"Wed": s("evening"), "Thu": s("evening"), "Fri": s("evening")},
			"Jamal":   {"Tue": s("afternoon"), "Thu": s("morning"), "Sun": r("afternoon", "morning")},
		},
	}
}

func exampleConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.RandomSeed = 7
	cfg.WeekStart = "2025-01-06"
	require.NoError(t, config.Validate(cfg))
	return cfg
}

func countAssignments(sched scheduler.Schedule) int {
	total := 0
	for _, day := range scheduler.Days {
		for _, shift := range scheduler.Shifts {
			total += sched.Count(day, shift)
		}
	}
	return total
}
