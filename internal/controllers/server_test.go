package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"
	"ProjectScoreService/internal/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockImportService struct{ mock.Mock }

var _ ImportService = &mockImportService{} // Compile-time check

func (m *mockImportService) Replace(ctx context.Context, projects []models.Project) (*models.ImportResult, error) {
	args := m.Called(ctx, projects)
	result, _ := args.Get(0).(*models.ImportResult)
	return result, args.Error(1)
}

func (m *mockImportService) ImportWorkbook(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	args := m.Called(ctx, r)
	result, _ := args.Get(0).(*models.ImportResult)
	return result, args.Error(1)
}

type mockScoringService struct{ mock.Mock }

var _ ScoringService = &mockScoringService{} // Compile-time check

func (m *mockScoringService) Scorecard(ctx context.Context, code, role string, overrides scoring.ThresholdOverrides) (*scoring.Scorecard, error) {
	args := m.Called(ctx, code, role, overrides)
	card, _ := args.Get(0).(*scoring.Scorecard)
	return card, args.Error(1)
}

func (m *mockScoringService) Leaderboard(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.Leaderboard, error) {
	args := m.Called(ctx, query, overrides)
	return args.Get(0).(scoring.Leaderboard), args.Error(1)
}

func (m *mockScoringService) HallOfFame(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.HallOfFame, error) {
	args := m.Called(ctx, query, overrides)
	fame, _ := args.Get(0).(scoring.HallOfFame)
	return fame, args.Error(1)
}

func (m *mockScoringService) DashboardSummary(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (*services.DashboardSummary, error) {
	args := m.Called(ctx, query, overrides)
	summary, _ := args.Get(0).(*services.DashboardSummary)
	return summary, args.Error(1)
}

func (m *mockScoringService) Roles(ctx context.Context) ([]scoring.Role, error) {
	args := m.Called(ctx)
	roles, _ := args.Get(0).([]scoring.Role)
	return roles, args.Error(1)
}

type mockMetricService struct{ mock.Mock }

var _ MetricService = &mockMetricService{} // Compile-time check

func (m *mockMetricService) ListMetrics(ctx context.Context, department, stage string) ([]scoring.MetricDef, error) {
	args := m.Called(ctx, department, stage)
	metrics, _ := args.Get(0).([]scoring.MetricDef)
	return metrics, args.Error(1)
}

func (m *mockMetricService) CreateMetric(ctx context.Context, req *models.RequestCreateMetric) (*models.ResponseMetric, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ResponseMetric)
	return resp, args.Error(1)
}

func (m *mockMetricService) UpdateMetric(ctx context.Context, id uint, req *models.RequestUpdateMetric) (*models.ResponseMetric, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.ResponseMetric)
	return resp, args.Error(1)
}

func (m *mockMetricService) ListGroups(ctx context.Context) ([]models.UserGroup, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]models.UserGroup)
	return groups, args.Error(1)
}

type mockWeightService struct{ mock.Mock }

var _ WeightService = &mockWeightService{} // Compile-time check

func (m *mockWeightService) SetWeight(ctx context.Context, req *models.RequestSetWeight) (*models.ResponseWeight, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ResponseWeight)
	return resp, args.Error(1)
}

func (m *mockWeightService) RemoveWeight(ctx context.Context, metricID, groupID uint) (*models.ResponseWeight, error) {
	args := m.Called(ctx, metricID, groupID)
	resp, _ := args.Get(0).(*models.ResponseWeight)
	return resp, args.Error(1)
}

func (m *mockWeightService) Recompute(ctx context.Context, groupID uint) (scoring.NormalizeResult, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(scoring.NormalizeResult), args.Error(1)
}

func (m *mockWeightService) WeightsFor(ctx context.Context, groupID uint) ([]models.MetricWeight, error) {
	args := m.Called(ctx, groupID)
	weights, _ := args.Get(0).([]models.MetricWeight)
	return weights, args.Error(1)
}

type testServer struct {
	imports    *mockImportService
	scoring    *mockScoringService
	metrics    *mockMetricService
	weights    *mockWeightService
	thresholds *services.ThresholdStore
	handler    http.Handler
}

func newTestServer() *testServer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := &testServer{
		imports:    &mockImportService{},
		scoring:    &mockScoringService{},
		metrics:    &mockMetricService{},
		weights:    &mockWeightService{},
		thresholds: services.NewThresholdStore(),
	}

	validate := NewValidator()
	server := &HTTPServer{
		mu:     &sync.RWMutex{},
		logger: logger,
		controllers: &controllersRegistry{
			project:     NewProjectController(ts.imports, ts.scoring, ts.thresholds, validate, logger),
			leaderboard: NewLeaderboardController(ts.scoring, ts.thresholds, logger),
			metric:      NewMetricController(ts.metrics, validate, logger),
			weight:      NewWeightController(ts.weights, validate, logger),
			threshold:   NewThresholdController(ts.thresholds, validate, logger),
		},
	}
	ts.handler = server.createRouter()
	return ts
}

func (ts *testServer) do(t *testing.T, method, target string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.Error {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("response did not set %s cookie", sessionCookieName)
	return nil
}
