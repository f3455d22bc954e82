package repository

import (
	"context"

	"ProjectScoreService/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeightRepository struct {
	database *gorm.DB
}

func NewWeightRepository(database *gorm.DB) *WeightRepository {
	return &WeightRepository{
		database: database,
	}
}

func (r *WeightRepository) FindAll(ctx context.Context) ([]models.MetricWeight, error) {
	var weights []models.MetricWeight
	err := r.database.WithContext(ctx).Order("id").Find(&weights).Error
	return weights, err
}

func (r *WeightRepository) FindByGroup(ctx context.Context, groupID uint) ([]models.MetricWeight, error) {
	var weights []models.MetricWeight
	err := r.database.WithContext(ctx).
		Where("user_group_id = ?", groupID).
		Order("metric_id").
		Find(&weights).Error
	return weights, err
}

// Upsert inserts the weight or updates the existing (metric, group) row.
func (r *WeightRepository) Upsert(ctx context.Context, weight *models.MetricWeight) error {
	return r.database.WithContext(ctx).
		Omit("UserGroup").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "metric_id"}, {Name: "user_group_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"factor", "is_manual", "credit", "updated_at"}),
		}).
		Create(weight).Error
}

func (r *WeightRepository) Delete(ctx context.Context, metricID, groupID uint) error {
	result := r.database.WithContext(ctx).
		Where("metric_id = ? AND user_group_id = ?", metricID, groupID).
		Delete(&models.MetricWeight{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateGroupCredits locks the group's weight rows, lets compute decide the
// new credits and writes back the ones that changed, all in one transaction.
func (r *WeightRepository) UpdateGroupCredits(ctx context.Context, groupID uint, compute func([]models.MetricWeight) []models.MetricWeight) error {
	return r.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []models.MetricWeight
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_group_id = ?", groupID).
			Order("id").
			Find(&current).Error
		if err != nil {
			return err
		}

		credits := make(map[uint]float64, len(current))
		for _, w := range current {
			credits[w.ID] = w.Credit
		}

		for _, w := range compute(current) {
			if old, ok := credits[w.ID]; ok && old == w.Credit {
				continue
			}
			if err := tx.Model(&models.MetricWeight{}).
				Where("id = ?", w.ID).
				Update("credit", w.Credit).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
