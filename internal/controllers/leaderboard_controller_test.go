package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"
	"ProjectScoreService/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetLeaderboardRequiresRole(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodGet, "/leaderboard", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ERROR", decodeError(t, rec).Code)
	ts.scoring.AssertNotCalled(t, "Leaderboard", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetLeaderboardParsesQueryAndOverrides(t *testing.T) {
	ts := newTestServer()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	ts.scoring.On("Leaderboard", mock.Anything,
		mock.MatchedBy(func(q services.ScoreQuery) bool {
			return q.Role == "Sales Lead" &&
				assert.ObjectsAreEqual([]string{"North", "South", "West"}, q.SBUs) &&
				q.Start.Equal(start) && q.End.Equal(end)
		}),
		mock.MatchedBy(func(o scoring.ThresholdOverrides) bool {
			return o.EffectiveMin("renders", 1) == 5
		}),
	).Return(scoring.Leaderboard{
		Role: "Sales Lead",
		Rows: []scoring.LeaderboardRow{{IndividualName: "Asha", TotalScore: 80, ProjectCount: 2, Rank: 1, Percentile: 100}},
	}, nil)

	rec := ts.do(t, http.MethodGet,
		"/leaderboard?role=Sales+Lead&sbu=North,South&sbu=West&start=2024-01-01&end=2024-01-31&thresh_pre_renders=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	sessionCookie(t, rec)

	var board scoring.Leaderboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	require.Len(t, board.Rows, 1)
	assert.Equal(t, "Asha", board.Rows[0].IndividualName)
	ts.scoring.AssertExpectations(t)
}

func TestGetLeaderboardRejectsBadDates(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodGet, "/leaderboard?role=SS&start=01/02/2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/leaderboard?role=SS&start=2024-02-01&end=2024-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThresholdOverridesPersistAcrossRequests(t *testing.T) {
	ts := newTestServer()
	ts.scoring.On("HallOfFame", mock.Anything, mock.Anything, mock.Anything).Return(scoring.HallOfFame{}, nil)

	first := ts.do(t, http.MethodGet, "/leaderboard/summary?thresh_post_invoices=3", nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookie := sessionCookie(t, first)

	rec := ts.do(t, http.MethodGet, "/leaderboard/summary", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	calls := ts.scoring.Calls
	require.Len(t, calls, 2)
	second := calls[1].Arguments.Get(2).(scoring.ThresholdOverrides)
	assert.Equal(t, 3.0, second.EffectiveMin("invoices", 1))
}

func TestGetDashboardSummarySingleStage(t *testing.T) {
	ts := newTestServer()
	ts.scoring.On("DashboardSummary", mock.Anything, mock.Anything, mock.Anything).Return(&services.DashboardSummary{
		Department: "Design",
		Pre:        scoring.StageSummary{Stage: models.StagePre, Total: 4},
		Post:       scoring.StageSummary{Stage: models.StagePost, Total: 1},
	}, nil)

	rec := ts.do(t, http.MethodGet, "/dashboard/summary?department=Design&stage=post", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary scoring.StageSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, models.StagePost, summary.Stage)
	assert.Equal(t, 1, summary.Total)
}

func TestGetDashboardSummaryUnknownDepartment(t *testing.T) {
	ts := newTestServer()
	ts.scoring.On("DashboardSummary", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, models.ErrDepartmentNotFound)

	rec := ts.do(t, http.MethodGet, "/dashboard/summary?department=Legal", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestGetDashboardSummaryValidatesParams(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodGet, "/dashboard/summary", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/dashboard/summary?department=Design&stage=During", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
