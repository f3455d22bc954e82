package services

import (
	"context"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockProjectStore is a mock implementation of ProjectStore for testing.
type MockProjectStore struct {
	mock.Mock
}

var _ ProjectStore = &MockProjectStore{} // Compile-time check

func (m *MockProjectStore) FindByCode(ctx context.Context, code string) (*models.Project, error) {
	args := m.Called(ctx, code)
	project, _ := args.Get(0).(*models.Project)
	return project, args.Error(1)
}

func (m *MockProjectStore) FindByFilter(ctx context.Context, filter repository.ProjectFilter) ([]models.Project, error) {
	args := m.Called(ctx, filter)
	projects, _ := args.Get(0).([]models.Project)
	return projects, args.Error(1)
}

func (m *MockProjectStore) ReplaceAll(ctx context.Context, projects []models.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

func (m *MockProjectStore) DistinctSBUs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	sbus, _ := args.Get(0).([]string)
	return sbus, args.Error(1)
}

// MockMetricStore is a mock implementation of MetricStore for testing.
type MockMetricStore struct {
	mock.Mock
}

var _ MetricStore = &MockMetricStore{} // Compile-time check

func (m *MockMetricStore) FindByID(ctx context.Context, id uint) (*models.Metric, error) {
	args := m.Called(ctx, id)
	metric, _ := args.Get(0).(*models.Metric)
	return metric, args.Error(1)
}

func (m *MockMetricStore) FindAll(ctx context.Context) ([]models.Metric, error) {
	args := m.Called(ctx)
	metrics, _ := args.Get(0).([]models.Metric)
	return metrics, args.Error(1)
}

func (m *MockMetricStore) FindVisibility(ctx context.Context) ([]models.MetricVisibility, error) {
	args := m.Called(ctx)
	links, _ := args.Get(0).([]models.MetricVisibility)
	return links, args.Error(1)
}

func (m *MockMetricStore) Create(ctx context.Context, metric *models.Metric, groupIDs []uint) error {
	args := m.Called(ctx, metric, groupIDs)
	return args.Error(0)
}

func (m *MockMetricStore) Update(ctx context.Context, metric *models.Metric, groupIDs []uint) error {
	args := m.Called(ctx, metric, groupIDs)
	return args.Error(0)
}

func (m *MockMetricStore) AffectedGroupIDs(ctx context.Context, metricID uint) ([]uint, error) {
	args := m.Called(ctx, metricID)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

// MockWeightStore is a mock implementation of WeightStore for testing.
// UpdateGroupCredits runs compute against Current and records the result.
type MockWeightStore struct {
	mock.Mock
	Current  map[uint][]models.MetricWeight
	Computed map[uint][]models.MetricWeight
}

var _ WeightStore = &MockWeightStore{} // Compile-time check

func (m *MockWeightStore) FindAll(ctx context.Context) ([]models.MetricWeight, error) {
	args := m.Called(ctx)
	weights, _ := args.Get(0).([]models.MetricWeight)
	return weights, args.Error(1)
}

func (m *MockWeightStore) FindByGroup(ctx context.Context, groupID uint) ([]models.MetricWeight, error) {
	args := m.Called(ctx, groupID)
	weights, _ := args.Get(0).([]models.MetricWeight)
	return weights, args.Error(1)
}

func (m *MockWeightStore) Upsert(ctx context.Context, weight *models.MetricWeight) error {
	args := m.Called(ctx, weight)
	return args.Error(0)
}

func (m *MockWeightStore) Delete(ctx context.Context, metricID, groupID uint) error {
	args := m.Called(ctx, metricID, groupID)
	return args.Error(0)
}

func (m *MockWeightStore) UpdateGroupCredits(ctx context.Context, groupID uint, compute func([]models.MetricWeight) []models.MetricWeight) error {
	args := m.Called(ctx, groupID)
	if err := args.Error(0); err != nil {
		return err
	}
	if m.Computed == nil {
		m.Computed = make(map[uint][]models.MetricWeight)
	}
	m.Computed[groupID] = compute(m.Current[groupID])
	return nil
}

// MockGroupStore is a mock implementation of GroupStore for testing.
type MockGroupStore struct {
	mock.Mock
}

var _ GroupStore = &MockGroupStore{} // Compile-time check

func (m *MockGroupStore) FindByID(ctx context.Context, id uint) (*models.UserGroup, error) {
	args := m.Called(ctx, id)
	group, _ := args.Get(0).(*models.UserGroup)
	return group, args.Error(1)
}

func (m *MockGroupStore) FindAll(ctx context.Context) ([]models.UserGroup, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]models.UserGroup)
	return groups, args.Error(1)
}

func (m *MockGroupStore) FindDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	args := m.Called(ctx, name)
	department, _ := args.Get(0).(*models.Department)
	return department, args.Error(1)
}

func (m *MockGroupStore) FindDepartments(ctx context.Context) ([]models.Department, error) {
	args := m.Called(ctx)
	departments, _ := args.Get(0).([]models.Department)
	return departments, args.Error(1)
}
