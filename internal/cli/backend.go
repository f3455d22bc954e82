package cli

import (
	"context"
	"fmt"
	"io"

	"ProjectScoreService/internal/database"
	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/repository"
	"ProjectScoreService/internal/scoring"
	"ProjectScoreService/internal/services"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type databaseBackend struct {
	db      *gorm.DB
	scoring *services.ScoringService
	weights *services.WeightService
	imports *services.ImportService
}

// NewDatabaseBackend connects to Postgres and builds the same services the
// HTTP server uses. The schema is expected to be migrated already.
func NewDatabaseBackend(_ context.Context, cfg *Config) (Backend, error) {
	db, err := database.Open(cfg.Database, logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log := newLogger()
	projects := repository.NewProjectRepository(db)
	metrics := repository.NewMetricRepository(db)
	weights := repository.NewWeightRepository(db)
	groups := repository.NewGroupRepository(db)

	return &databaseBackend{
		db:      db,
		scoring: services.NewScoringService(projects, metrics, weights, groups, cfg.Scoring, log),
		weights: services.NewWeightService(weights, metrics, groups, log),
		imports: services.NewImportService(projects, log),
	}, nil
}

func (b *databaseBackend) Leaderboard(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.Leaderboard, error) {
	return b.scoring.Leaderboard(ctx, query, overrides)
}

func (b *databaseBackend) HallOfFame(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.HallOfFame, error) {
	return b.scoring.HallOfFame(ctx, query, overrides)
}

func (b *databaseBackend) Recompute(ctx context.Context, groupID uint) (scoring.NormalizeResult, error) {
	return b.weights.Recompute(ctx, groupID)
}

func (b *databaseBackend) ImportWorkbook(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	return b.imports.ImportWorkbook(ctx, r)
}

func (b *databaseBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
