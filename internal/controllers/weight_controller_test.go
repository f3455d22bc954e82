package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetWeight(t *testing.T) {
	ts := newTestServer()
	ts.weights.On("SetWeight", mock.Anything, mock.MatchedBy(func(req *models.RequestSetWeight) bool {
		return req.MetricID == 1 && req.GroupID == 2 && req.Factor == 4 && req.IsManual
	})).Return(&models.ResponseWeight{Weight: &models.MetricWeight{MetricID: 1, UserGroupID: 2, Factor: 4, Credit: 25}}, nil)

	rec := ts.do(t, http.MethodPut, "/weights", map[string]interface{}{
		"metric_id": 1, "group_id": 2, "factor": 4, "is_manual": true, "credit": 25,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ResponseWeight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Weight)
	assert.Equal(t, 25.0, resp.Weight.Credit)
}

func TestSetWeightValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "factor too high", body: map[string]interface{}{"metric_id": 1, "group_id": 2, "factor": 11}},
		{name: "factor zero", body: map[string]interface{}{"metric_id": 1, "group_id": 2, "factor": 0}},
		{name: "missing group", body: map[string]interface{}{"metric_id": 1, "factor": 3}},
		{name: "credit above budget", body: map[string]interface{}{"metric_id": 1, "group_id": 2, "factor": 3, "is_manual": true, "credit": 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()

			rec := ts.do(t, http.MethodPut, "/weights", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			ts.weights.AssertNotCalled(t, "SetWeight", mock.Anything, mock.Anything)
		})
	}
}

func TestRemoveWeight(t *testing.T) {
	ts := newTestServer()
	ts.weights.On("RemoveWeight", mock.Anything, uint(1), uint(2)).Return(&models.ResponseWeight{}, nil)
	ts.weights.On("RemoveWeight", mock.Anything, uint(9), uint(2)).Return(nil, models.ErrWeightNotFound)

	rec := ts.do(t, http.MethodDelete, "/weights?metric_id=1&group_id=2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/weights?metric_id=9&group_id=2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/weights?metric_id=1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecomputeGroup(t *testing.T) {
	ts := newTestServer()
	ts.weights.On("Recompute", mock.Anything, uint(3)).Return(scoring.NormalizeResult{
		GroupID: 3, ManualSum: 50, Remaining: 50, AutoCount: 3, AutoCredit: 16.67, Updated: 3,
	}, nil)
	ts.weights.On("Recompute", mock.Anything, uint(4)).Return(scoring.NormalizeResult{}, errors.New("deadlock detected"))

	rec := ts.do(t, http.MethodPost, "/groups/3/recompute", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result scoring.NormalizeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 16.67, result.AutoCredit)

	rec = ts.do(t, http.MethodPost, "/groups/4/recompute", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetGroupWeights(t *testing.T) {
	ts := newTestServer()
	ts.weights.On("WeightsFor", mock.Anything, uint(2)).Return([]models.MetricWeight{{MetricID: 1, UserGroupID: 2, Factor: 3}}, nil)
	ts.weights.On("WeightsFor", mock.Anything, uint(8)).Return(nil, models.ErrGroupNotFound)

	rec := ts.do(t, http.MethodGet, "/groups/2/weights", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var weights []models.MetricWeight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &weights))
	assert.Len(t, weights, 1)

	rec = ts.do(t, http.MethodGet, "/groups/8/weights", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
