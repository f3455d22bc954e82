package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"gorm.io/gorm"
)

type GroupRecomputer interface {
	RecomputeGroups(ctx context.Context, groupIDs []uint) []string
}

type MetricService struct {
	metricStore MetricStore
	weightStore WeightStore
	groupStore  GroupStore
	recomputer  GroupRecomputer
	logger      *slog.Logger
}

func NewMetricService(
	metricStore MetricStore,
	weightStore WeightStore,
	groupStore GroupStore,
	recomputer GroupRecomputer,
	logger *slog.Logger,
) *MetricService {
	return &MetricService{
		metricStore: metricStore,
		weightStore: weightStore,
		groupStore:  groupStore,
		recomputer:  recomputer,
		logger:      logger,
	}
}

// ListMetrics returns metrics of a department (by name) and stage. Empty
// filters match everything; an unknown department yields no metrics.
func (s *MetricService) ListMetrics(ctx context.Context, department, stage string) ([]scoring.MetricDef, error) {
	var departmentID uint
	if department != "" {
		dept, err := s.groupStore.FindDepartmentByName(ctx, department)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []scoring.MetricDef{}, nil
		}
		if err != nil {
			return nil, err
		}
		departmentID = dept.ID
	}

	registry, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}
	return registry.MetricsFor(departmentID, stage), nil
}

// CreateMetric saves the metric and rebalances the groups it is visible to.
// Failed rebalances are reported next to the saved metric.
func (s *MetricService) CreateMetric(ctx context.Context, req *models.RequestCreateMetric) (*models.ResponseMetric, error) {
	metric := req.ToMetric()
	if err := s.validateMetricInput(&metric); err != nil {
		return nil, err
	}

	if err := s.metricStore.Create(ctx, &metric, req.VisibleToGroups); err != nil {
		return nil, fmt.Errorf("failed to create metric: %w", err)
	}

	response := &models.ResponseMetric{Metric: metric}
	if len(req.VisibleToGroups) > 0 {
		response.RecalculationErrors = s.recomputer.RecomputeGroups(ctx, req.VisibleToGroups)
	}
	return response, nil
}

// UpdateMetric saves the metric and rebalances every group it belonged to
// before or after the change.
func (s *MetricService) UpdateMetric(ctx context.Context, id uint, req *models.RequestUpdateMetric) (*models.ResponseMetric, error) {
	metric, err := s.metricStore.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrMetricNotFound
	}
	if err != nil {
		return nil, err
	}

	before, err := s.metricStore.AffectedGroupIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(metric)
	if err := s.validateMetricInput(metric); err != nil {
		return nil, err
	}

	if err := s.metricStore.Update(ctx, metric, req.VisibleToGroups); err != nil {
		return nil, fmt.Errorf("failed to update metric: %w", err)
	}

	after, err := s.metricStore.AffectedGroupIDs(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load affected groups after metric update", "error", err, "metric_id", id)
		after = nil
	}

	return &models.ResponseMetric{
		Metric:              *metric,
		RecalculationErrors: s.recomputer.RecomputeGroups(ctx, unionIDs(before, after)),
	}, nil
}

func (s *MetricService) ListGroups(ctx context.Context) ([]models.UserGroup, error) {
	return s.groupStore.FindAll(ctx)
}

func (s *MetricService) registry(ctx context.Context) (*scoring.Registry, error) {
	metrics, err := s.metricStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	weights, err := s.weightStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	visibility, err := s.metricStore.FindVisibility(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.NewRegistry(metrics, weights, visibility), nil
}

func (s *MetricService) validateMetricInput(metric *models.Metric) error {
	if metric.Label == "" {
		return errors.New("metric label cannot be empty")
	}
	if !models.IsMetricField(metric.FieldName) {
		return fmt.Errorf("%w: %s", models.ErrUnknownMetricField, metric.FieldName)
	}
	if metric.Stage != models.StagePre && metric.Stage != models.StagePost {
		return fmt.Errorf("invalid stage %q", metric.Stage)
	}
	return nil
}

func unionIDs(a, b []uint) []uint {
	seen := make(map[uint]struct{}, len(a)+len(b))
	out := make([]uint, 0, len(a)+len(b))
	for _, list := range [][]uint{a, b} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
