package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"gorm.io/gorm"
)

const (
	recomputeWarningThreshold = 100 * time.Millisecond
)

type WeightService struct {
	weightStore WeightStore
	metricStore MetricStore
	groupStore  GroupStore
	logger      *slog.Logger
}

func NewWeightService(
	weightStore WeightStore,
	metricStore MetricStore,
	groupStore GroupStore,
	logger *slog.Logger,
) *WeightService {
	return &WeightService{
		weightStore: weightStore,
		metricStore: metricStore,
		groupStore:  groupStore,
		logger:      logger,
	}
}

// SetWeight upserts the weight and rebalances its group. A failed rebalance
// is reported next to the saved weight instead of failing the write.
func (s *WeightService) SetWeight(ctx context.Context, req *models.RequestSetWeight) (*models.ResponseWeight, error) {
	if err := s.validateMetricExists(ctx, req.MetricID); err != nil {
		return nil, err
	}
	if err := s.validateGroupExists(ctx, req.GroupID); err != nil {
		return nil, err
	}

	weight := &models.MetricWeight{
		MetricID:    req.MetricID,
		UserGroupID: req.GroupID,
		Factor:      req.Factor,
		IsManual:    req.IsManual,
	}
	if req.IsManual {
		credit, err := s.manualCredit(ctx, req)
		if err != nil {
			return nil, err
		}
		weight.Credit = credit
	}

	if err := s.weightStore.Upsert(ctx, weight); err != nil {
		return nil, fmt.Errorf("failed to save weight: %w", err)
	}

	response := &models.ResponseWeight{Weight: weight}
	response.RecalculationErrors = s.RecomputeGroups(ctx, []uint{req.GroupID})
	return response, nil
}

func (s *WeightService) RemoveWeight(ctx context.Context, metricID, groupID uint) (*models.ResponseWeight, error) {
	err := s.weightStore.Delete(ctx, metricID, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrWeightNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete weight: %w", err)
	}

	return &models.ResponseWeight{
		RecalculationErrors: s.RecomputeGroups(ctx, []uint{groupID}),
	}, nil
}

// Recompute redistributes the group's auto credits under a row lock.
func (s *WeightService) Recompute(ctx context.Context, groupID uint) (scoring.NormalizeResult, error) {
	startTime := time.Now()

	if err := s.validateGroupExists(ctx, groupID); err != nil {
		return scoring.NormalizeResult{}, err
	}

	var result scoring.NormalizeResult
	err := s.weightStore.UpdateGroupCredits(ctx, groupID, func(current []models.MetricWeight) []models.MetricWeight {
		assignments := make([]scoring.WeightAssignment, len(current))
		for i, w := range current {
			assignments[i] = scoring.WeightAssignment{
				MetricID: w.MetricID,
				GroupID:  w.UserGroupID,
				IsManual: w.IsManual,
				Credit:   w.Credit,
			}
		}

		var normalized []scoring.WeightAssignment
		normalized, result = scoring.NormalizeCredits(groupID, assignments)

		updated := make([]models.MetricWeight, len(current))
		copy(updated, current)
		for i := range updated {
			updated[i].Credit = normalized[i].Credit
		}
		return updated
	})
	if err != nil {
		return scoring.NormalizeResult{}, fmt.Errorf("failed to recompute group %d: %w", groupID, err)
	}

	s.logPerformanceWarning(groupID, startTime)
	return result, nil
}

func (s *WeightService) WeightsFor(ctx context.Context, groupID uint) ([]models.MetricWeight, error) {
	if err := s.validateGroupExists(ctx, groupID); err != nil {
		return nil, err
	}
	return s.weightStore.FindByGroup(ctx, groupID)
}

// RecomputeGroups rebalances each group, logging and collecting failures.
func (s *WeightService) RecomputeGroups(ctx context.Context, groupIDs []uint) []string {
	var failures []string
	for _, groupID := range groupIDs {
		if _, err := s.Recompute(ctx, groupID); err != nil {
			s.logger.Error("Failed to recompute group credits",
				"group_id", groupID,
				"error", err,
			)
			failures = append(failures, err.Error())
		}
	}
	return failures
}

// manualCredit keeps the stored credit of a manual weight when the request
// only edits its factor.
func (s *WeightService) manualCredit(ctx context.Context, req *models.RequestSetWeight) (float64, error) {
	if req.Credit != nil {
		return *req.Credit, nil
	}

	current, err := s.weightStore.FindByGroup(ctx, req.GroupID)
	if err != nil {
		return 0, fmt.Errorf("failed to load group weights: %w", err)
	}
	for _, w := range current {
		if w.MetricID == req.MetricID && w.IsManual {
			return w.Credit, nil
		}
	}
	return 0, nil
}

func (s *WeightService) validateGroupExists(ctx context.Context, groupID uint) error {
	_, err := s.groupStore.FindByID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrGroupNotFound
	}
	return err
}

func (s *WeightService) validateMetricExists(ctx context.Context, metricID uint) error {
	_, err := s.metricStore.FindByID(ctx, metricID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrMetricNotFound
	}
	return err
}

func (s *WeightService) logPerformanceWarning(groupID uint, startTime time.Time) {
	duration := time.Since(startTime)
	if duration > recomputeWarningThreshold {
		s.logger.Warn("Recompute execution time exceeded threshold",
			"group_id", groupID,
			"duration", duration,
			"threshold", recomputeWarningThreshold,
		)
	}
}
