package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ProjectScoreService/internal/models"

	"gorm.io/gorm"
)

const projectBatchSize = 200

type ProjectFilter struct {
	SBUs          []string
	Start         *time.Time
	End           *time.Time
	RoleField     string
	ExcludedCodes []string
}

type ProjectRepository struct {
	database *gorm.DB
}

func NewProjectRepository(database *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		database: database,
	}
}

func (r *ProjectRepository) FindByCode(ctx context.Context, code string) (*models.Project, error) {
	var project models.Project
	result := r.database.WithContext(ctx).Where("project_code = ?", code).First(&project)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &project, nil
}

// FindByFilter applies region, date window, role holder and exclusion filters.
// A project is inside the window when either its login or start date is.
func (r *ProjectRepository) FindByFilter(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	query := r.database.WithContext(ctx).Model(&models.Project{}).
		Where("project_code <> ''")

	if len(filter.SBUs) > 0 {
		query = query.Where("sbu IN ?", filter.SBUs)
	}
	if filter.Start != nil && filter.End != nil {
		query = query.Where("((login_date BETWEEN ? AND ?) OR (start_date BETWEEN ? AND ?))",
			*filter.Start, *filter.End, *filter.Start, *filter.End)
	}
	if filter.RoleField != "" {
		if !models.IsStakeholderField(filter.RoleField) {
			return nil, fmt.Errorf("unknown stakeholder field %q", filter.RoleField)
		}
		query = query.Where(fmt.Sprintf("%s IS NOT NULL AND TRIM(%s) <> ''", filter.RoleField, filter.RoleField))
	}
	if len(filter.ExcludedCodes) > 0 {
		query = query.Where("project_code NOT IN ?", filter.ExcludedCodes)
	}

	var projects []models.Project
	err := query.Order("project_code").Find(&projects).Error
	return projects, err
}

// ReplaceAll swaps the whole project set inside one transaction so readers
// never observe a partial import.
func (r *ProjectRepository) ReplaceAll(ctx context.Context, projects []models.Project) error {
	return r.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if len(projects) == 0 {
			return nil
		}
		return tx.CreateInBatches(projects, projectBatchSize).Error
	})
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.database.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}

func (r *ProjectRepository) DistinctSBUs(ctx context.Context) ([]string, error) {
	var sbus []string
	err := r.database.WithContext(ctx).Model(&models.Project{}).
		Where("sbu IS NOT NULL AND sbu <> ''").
		Distinct().
		Order("sbu").
		Pluck("sbu", &sbus).Error
	return sbus, err
}
