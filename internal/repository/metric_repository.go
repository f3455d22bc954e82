package repository

import (
	"context"
	"errors"

	"ProjectScoreService/internal/models"

	"gorm.io/gorm"
)

type MetricRepository struct {
	database *gorm.DB
}

func NewMetricRepository(database *gorm.DB) *MetricRepository {
	return &MetricRepository{
		database: database,
	}
}

func (r *MetricRepository) FindByID(ctx context.Context, id uint) (*models.Metric, error) {
	var metric models.Metric
	result := r.database.WithContext(ctx).
		Preload("SuccessCategory").
		Preload("VisibleToGroups").
		Where("id = ?", id).
		First(&metric)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &metric, nil
}

func (r *MetricRepository) FindAll(ctx context.Context) ([]models.Metric, error) {
	var metrics []models.Metric
	err := r.database.WithContext(ctx).
		Preload("SuccessCategory").
		Preload("VisibleToGroups").
		Order("id").
		Find(&metrics).Error
	return metrics, err
}

func (r *MetricRepository) FindVisibility(ctx context.Context) ([]models.MetricVisibility, error) {
	var links []models.MetricVisibility
	err := r.database.WithContext(ctx).Find(&links).Error
	return links, err
}

func (r *MetricRepository) Create(ctx context.Context, metric *models.Metric, groupIDs []uint) error {
	return r.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("VisibleToGroups", "Weights", "Department", "SuccessCategory").Create(metric).Error; err != nil {
			return err
		}
		return r.replaceVisibility(tx, metric.ID, groupIDs)
	})
}

// Update saves the metric. A nil groupIDs keeps the current visibility.
func (r *MetricRepository) Update(ctx context.Context, metric *models.Metric, groupIDs []uint) error {
	return r.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("VisibleToGroups", "Weights", "Department", "SuccessCategory").Save(metric).Error; err != nil {
			return err
		}
		if groupIDs == nil {
			return nil
		}
		return r.replaceVisibility(tx, metric.ID, groupIDs)
	})
}

// AffectedGroupIDs returns every group that weights or legacy-sees the metric.
func (r *MetricRepository) AffectedGroupIDs(ctx context.Context, metricID uint) ([]uint, error) {
	var ids []uint
	err := r.database.WithContext(ctx).Raw(`
		SELECT user_group_id FROM metric_weights WHERE metric_id = ?
		UNION
		SELECT user_group_id FROM metric_visible_groups WHERE metric_id = ?
		ORDER BY user_group_id`, metricID, metricID).
		Scan(&ids).Error
	return ids, err
}

func (r *MetricRepository) replaceVisibility(tx *gorm.DB, metricID uint, groupIDs []uint) error {
	if err := tx.Where("metric_id = ?", metricID).Delete(&models.MetricVisibility{}).Error; err != nil {
		return err
	}
	if len(groupIDs) == 0 {
		return nil
	}

	links := make([]models.MetricVisibility, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		links = append(links, models.MetricVisibility{MetricID: metricID, UserGroupID: groupID})
	}
	return tx.Create(&links).Error
}
