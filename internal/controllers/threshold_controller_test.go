package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"ProjectScoreService/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeThresholds(t *testing.T, body []byte) models.ResponseThresholds {
	t.Helper()
	var resp models.ResponseThresholds
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestThresholdLifecycle(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodPost, "/thresholds", models.RequestSetThresholds{
		Overrides: map[string]float64{"renders": 4, "boq": 2},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	set := decodeThresholds(t, rec.Body.Bytes())
	assert.Equal(t, cookie.Value, set.SessionID)

	rec = ts.do(t, http.MethodGet, "/thresholds?thresh_pre_cad_files=1.5", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeThresholds(t, rec.Body.Bytes())
	assert.Equal(t, map[string]float64{"renders": 4, "boq": 2, "cad_files": 1.5}, got.Overrides)

	rec = ts.do(t, http.MethodPost, "/thresholds/reset", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/thresholds", nil, cookie)
	assert.Empty(t, decodeThresholds(t, rec.Body.Bytes()).Overrides)
}

func TestThresholdsAreScopedToSession(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodPost, "/thresholds", models.RequestSetThresholds{
		Overrides: map[string]float64{"renders": 9},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	other := ts.do(t, http.MethodGet, "/thresholds", nil)
	assert.Empty(t, decodeThresholds(t, other.Body.Bytes()).Overrides)
}

func TestSetThresholdsRejectsUnknownField(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodPost, "/thresholds", models.RequestSetThresholds{
		Overrides: map[string]float64{"karma": 1},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, rec).Code)
}
