package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
	"github.com/jakechorley/shift-rota/pkg/roster"
)

func TestGenerateSchedule_PersistsRun(t *testing.T) {
	mock := &mockRunStore{}
	cfg := exampleConfig(t)

	result, err := GenerateSchedule(context.Background(), mock, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{})
	require.NoError(t, err)

	assert.True(t, result.Persisted)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), result.WeekStart)
	assert.Equal(t, "2025-01-12", result.Dates[scheduler.Sun].Format(dateLayout))
	assert.Empty(t, scheduler.Audit(result.Schedule.Schedule, result.Config))

	require.Equal(t, 1, mock.inserted)
	run := mock.runs[0]
	assert.Equal(t, result.RunID, run.ID)
	assert.Equal(t, "2025-01-06", run.WeekStart)
	assert.Equal(t, int64(7), run.RandomSeed)
	assert.Equal(t, 2, run.MinPerShift)
	assert.Equal(t, 4, run.MaxPerShift)
	assert.Equal(t, 5, run.MaxDaysPerEmployee)

	assignments := mock.assignments[run.ID]
	assert.Len(t, assignments, countAssignments(result.Schedule.Schedule))
	for _, a := range assignments {
		assert.Equal(t, run.ID, a.RunID)
		day, ok := scheduler.ParseDay(a.Day)
		require.True(t, ok)
		assert.Equal(t, result.Dates[day].Format(dateLayout), a.ShiftDate)
	}

	warnings := mock.warnings[run.ID]
	require.Len(t, warnings, len(result.Schedule.Warnings))
	for i, w := range warnings {
		assert.Equal(t, i, w.Position)
		assert.Equal(t, result.Schedule.Warnings[i], w.Message)
	}
}

func TestGenerateSchedule_AssignmentPositionsFollowInsertionOrder(t *testing.T) {
	mock := &mockRunStore{}
	cfg := exampleConfig(t)

	result, err := GenerateSchedule(context.Background(), mock, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{})
	require.NoError(t, err)

	var monMorning []string
	for _, a := range mock.assignments[result.RunID] {
		if a.Day == "Mon" && a.Shift == "morning" {
			assert.Equal(t, len(monMorning), a.Position)
			monMorning = append(monMorning, a.Employee)
		}
	}
	assert.Equal(t, []string{"Alice", "Diana"}, monMorning)
}

func TestGenerateSchedule_DryRun(t *testing.T) {
	mock := &mockRunStore{}
	cfg := exampleConfig(t)

	result, err := GenerateSchedule(context.Background(), mock, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{DryRun: true})
	require.NoError(t, err)

	assert.False(t, result.Persisted)
	assert.Empty(t, result.RunID)
	assert.Equal(t, 0, mock.inserted)
	assert.NotZero(t, countAssignments(result.Schedule.Schedule))
}

func TestGenerateSchedule_SeedOverride(t *testing.T) {
	cfg := exampleConfig(t)
	seed := int64(99)

	result, err := GenerateSchedule(context.Background(), nil, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{DryRun: true, Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, int64(99), result.Config.RandomSeed)
	assert.Equal(t, int64(7), cfg.RandomSeed, "config must not be modified")
}

func TestGenerateSchedule_SameSeedSameSchedule(t *testing.T) {
	cfg := exampleConfig(t)

	first, err := GenerateSchedule(context.Background(), nil, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{DryRun: true})
	require.NoError(t, err)
	second, err := GenerateSchedule(context.Background(), nil, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, first.Schedule.Schedule, second.Schedule.Schedule)
	assert.Equal(t, first.Schedule.Warnings, second.Schedule.Warnings)
}

func TestGenerateSchedule_DefaultsToNextMonday(t *testing.T) {
	cfg := exampleConfig(t)
	cfg.WeekStart = ""
	wednesday := time.Date(2025, 1, 8, 15, 30, 0, 0, time.UTC)

	result, err := GenerateSchedule(context.Background(), nil, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{
		DryRun: true,
		Now:    func() time.Time { return wednesday },
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-13", result.WeekStart.Format(dateLayout))
}

func TestGenerateSchedule_WeekStartOption(t *testing.T) {
	cfg := exampleConfig(t)

	result, err := GenerateSchedule(context.Background(), nil, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{
		DryRun:    true,
		WeekStart: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03", result.Dates[scheduler.Mon].Format(dateLayout))

	_, err = GenerateSchedule(context.Background(), nil, cfg, zap.NewNop(), exampleDocument(), GenerateOptions{
		DryRun:    true,
		WeekStart: time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start on a Monday")
}

func TestGenerateSchedule_Infeasible(t *testing.T) {
	mock := &mockRunStore{}
	cfg := exampleConfig(t)
	cfg.MaxDaysPerEmployee = 1
	doc := &roster.Document{Employees: []string{"A", "B", "C", "D", "E"}}

	_, err := GenerateSchedule(context.Background(), mock, cfg, zap.NewNop(), doc, GenerateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, scheduler.ErrInfeasible)

	var infeasible *scheduler.InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, 37, infeasible.Deficit)
	assert.Equal(t, 0, mock.inserted)
}

func TestGenerateSchedule_EmptyRoster(t *testing.T) {
	mock := &mockRunStore{}
	doc := &roster.Document{Employees: []string{"", "   "}}

	_, err := GenerateSchedule(context.Background(), mock, exampleConfig(t), zap.NewNop(), doc, GenerateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, scheduler.ErrInvalidInput)
	assert.Equal(t, 0, mock.inserted)
}

func TestGenerateSchedule_StoreError(t *testing.T) {
	mock := &mockRunStore{insertErr: errStore}

	_, err := GenerateSchedule(context.Background(), mock, exampleConfig(t), zap.NewNop(), exampleDocument(), GenerateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errStore)
	assert.Contains(t, err.Error(), "failed to save run")
}
