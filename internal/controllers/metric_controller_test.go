package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListMetrics(t *testing.T) {
	ts := newTestServer()
	ts.metrics.On("ListMetrics", mock.Anything, "Design", "Pre").Return([]scoring.MetricDef{
		{ID: 1, Label: "Renders", Field: "renders", Stage: "Pre", Max: 10},
	}, nil)

	rec := ts.do(t, http.MethodGet, "/metrics?department=Design&stage=Pre", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var metrics []scoring.MetricDef
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	require.Len(t, metrics, 1)
	assert.Equal(t, "renders", metrics[0].Field)
}

func TestCreateMetricValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "unknown field name",
			body: map[string]interface{}{"label": "X", "field_name": "unknown", "department_id": 1, "stage": "Pre"},
		},
		{
			name: "bad stage",
			body: map[string]interface{}{"label": "X", "field_name": "renders", "department_id": 1, "stage": "Later"},
		},
		{
			name: "missing label",
			body: map[string]interface{}{"field_name": "renders", "department_id": 1, "stage": "Pre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()

			rec := ts.do(t, http.MethodPost, "/metrics", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION", decodeError(t, rec).Code)
			ts.metrics.AssertNotCalled(t, "CreateMetric", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateMetric(t *testing.T) {
	ts := newTestServer()
	ts.metrics.On("CreateMetric", mock.Anything, mock.MatchedBy(func(req *models.RequestCreateMetric) bool {
		return req.FieldName == "renders" && len(req.VisibleToGroups) == 2
	})).Return(&models.ResponseMetric{
		Metric:              models.Metric{ID: 12, Label: "Renders", FieldName: "renders", Stage: "Pre"},
		RecalculationErrors: []string{"failed to recompute group 4: timeout"},
	}, nil)

	rec := ts.do(t, http.MethodPost, "/metrics", map[string]interface{}{
		"label": "Renders", "field_name": "renders", "department_id": 2, "stage": "Pre",
		"min_threshold": 1, "max_threshold": 10, "visible_to_groups": []uint{3, 4},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.ResponseMetric
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(12), resp.Metric.ID)
	assert.Equal(t, []string{"failed to recompute group 4: timeout"}, resp.RecalculationErrors)
}

func TestUpdateMetric(t *testing.T) {
	ts := newTestServer()
	ts.metrics.On("UpdateMetric", mock.Anything, uint(5), mock.Anything).Return(&models.ResponseMetric{
		Metric:              models.Metric{ID: 5, MaxThreshold: 20},
		RecalculationErrors: []string{"failed to recompute group 2: timeout"},
	}, nil)

	rec := ts.do(t, http.MethodPut, "/metrics/5", map[string]interface{}{"max_threshold": 20})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ResponseMetric
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.RecalculationErrors, 1)
}

func TestUpdateMetricErrors(t *testing.T) {
	ts := newTestServer()
	ts.metrics.On("UpdateMetric", mock.Anything, uint(404), mock.Anything).Return(nil, models.ErrMetricNotFound)

	rec := ts.do(t, http.MethodPut, "/metrics/404", map[string]interface{}{"label": "New"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPut, "/metrics/abc", map[string]interface{}{"label": "New"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPut, "/metrics/1", map[string]interface{}{"field_name": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGroups(t *testing.T) {
	ts := newTestServer()
	key := "SS"
	ts.metrics.On("ListGroups", mock.Anything).Return([]models.UserGroup{{ID: 1, Name: "Site Supervisor", RoleKey: &key}}, nil)

	rec := ts.do(t, http.MethodGet, "/groups", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Site Supervisor")
}
