package controllers

import (
	"context"
	"io"
	"net/url"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"
	"ProjectScoreService/internal/services"
)

type ImportService interface {
	Replace(ctx context.Context, projects []models.Project) (*models.ImportResult, error)
	ImportWorkbook(ctx context.Context, r io.Reader) (*models.ImportResult, error)
}

type ScoringService interface {
	Scorecard(ctx context.Context, code, role string, overrides scoring.ThresholdOverrides) (*scoring.Scorecard, error)
	Leaderboard(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.Leaderboard, error)
	HallOfFame(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.HallOfFame, error)
	DashboardSummary(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (*services.DashboardSummary, error)
	Roles(ctx context.Context) ([]scoring.Role, error)
}

type MetricService interface {
	ListMetrics(ctx context.Context, department, stage string) ([]scoring.MetricDef, error)
	CreateMetric(ctx context.Context, req *models.RequestCreateMetric) (*models.ResponseMetric, error)
	UpdateMetric(ctx context.Context, id uint, req *models.RequestUpdateMetric) (*models.ResponseMetric, error)
	ListGroups(ctx context.Context) ([]models.UserGroup, error)
}

type WeightService interface {
	SetWeight(ctx context.Context, req *models.RequestSetWeight) (*models.ResponseWeight, error)
	RemoveWeight(ctx context.Context, metricID, groupID uint) (*models.ResponseWeight, error)
	Recompute(ctx context.Context, groupID uint) (scoring.NormalizeResult, error)
	WeightsFor(ctx context.Context, groupID uint) ([]models.MetricWeight, error)
}

type ThresholdService interface {
	Get(sessionID string) scoring.ThresholdOverrides
	Set(sessionID string, values map[string]float64) scoring.ThresholdOverrides
	Reset(sessionID string)
	ApplyQuery(sessionID string, query url.Values) scoring.ThresholdOverrides
}
