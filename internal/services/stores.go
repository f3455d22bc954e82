package services

import (
	"context"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/repository"
)

type ProjectStore interface {
	FindByCode(ctx context.Context, code string) (*models.Project, error)
	FindByFilter(ctx context.Context, filter repository.ProjectFilter) ([]models.Project, error)
	ReplaceAll(ctx context.Context, projects []models.Project) error
	DistinctSBUs(ctx context.Context) ([]string, error)
}

type MetricStore interface {
	FindByID(ctx context.Context, id uint) (*models.Metric, error)
	FindAll(ctx context.Context) ([]models.Metric, error)
	FindVisibility(ctx context.Context) ([]models.MetricVisibility, error)
	Create(ctx context.Context, metric *models.Metric, groupIDs []uint) error
	Update(ctx context.Context, metric *models.Metric, groupIDs []uint) error
	AffectedGroupIDs(ctx context.Context, metricID uint) ([]uint, error)
}

type WeightStore interface {
	FindAll(ctx context.Context) ([]models.MetricWeight, error)
	FindByGroup(ctx context.Context, groupID uint) ([]models.MetricWeight, error)
	Upsert(ctx context.Context, weight *models.MetricWeight) error
	Delete(ctx context.Context, metricID, groupID uint) error
	UpdateGroupCredits(ctx context.Context, groupID uint, compute func([]models.MetricWeight) []models.MetricWeight) error
}

type GroupStore interface {
	FindByID(ctx context.Context, id uint) (*models.UserGroup, error)
	FindAll(ctx context.Context) ([]models.UserGroup, error)
	FindDepartmentByName(ctx context.Context, name string) (*models.Department, error)
	FindDepartments(ctx context.Context) ([]models.Department, error)
}
