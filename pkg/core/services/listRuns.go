package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/pkg/db"
)

// ListRunsStore defines the database operations needed for listing runs
type ListRunsStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
}

// ListRuns returns every stored run, oldest first
func ListRuns(ctx context.Context, database ListRunsStore, logger *zap.Logger) ([]db.Run, error) {
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	logger.Debug("Found runs", zap.Int("count", len(runs)))

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].CreatedAt != runs[j].CreatedAt {
			return runs[i].CreatedAt < runs[j].CreatedAt
		}
		return runs[i].ID < runs[j].ID
	})

	return runs, nil
}
