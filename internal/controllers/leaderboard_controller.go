package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"ProjectScoreService/internal/models"
)

type LeaderboardController struct {
	responder
	service    ScoringService
	thresholds ThresholdService
}

func NewLeaderboardController(service ScoringService, thresholds ThresholdService, logger *slog.Logger) *LeaderboardController {
	return &LeaderboardController{
		responder:  responder{logger: logger},
		service:    service,
		thresholds: thresholds,
	}
}

func (ctrl *LeaderboardController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	query, err := parseScoreQuery(r)
	if err != nil {
		ctrl.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	if query.Role == "" {
		ctrl.sendErrorResponse(w, "role parameter is required", http.StatusBadRequest)
		return
	}

	overrides := ctrl.thresholds.ApplyQuery(sessionFromContext(r.Context()), r.URL.Query())

	board, err := ctrl.service.Leaderboard(r.Context(), query, overrides)
	if err != nil {
		ctrl.logger.Error("Failed to build leaderboard", "error", err, "role", query.Role)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, board, http.StatusOK)
}

func (ctrl *LeaderboardController) GetHallOfFame(w http.ResponseWriter, r *http.Request) {
	query, err := parseScoreQuery(r)
	if err != nil {
		ctrl.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	overrides := ctrl.thresholds.ApplyQuery(sessionFromContext(r.Context()), r.URL.Query())

	fame, err := ctrl.service.HallOfFame(r.Context(), query, overrides)
	if err != nil {
		ctrl.logger.Error("Failed to build hall of fame", "error", err)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, fame, http.StatusOK)
}

// GetDashboardSummary returns both stage summaries, or only one when stage is given.
func (ctrl *LeaderboardController) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	query, err := parseScoreQuery(r)
	if err != nil {
		ctrl.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	if query.Department == "" {
		ctrl.sendErrorResponse(w, "department parameter is required", http.StatusBadRequest)
		return
	}

	stage := strings.TrimSpace(r.URL.Query().Get("stage"))
	if stage != "" && !strings.EqualFold(stage, models.StagePre) && !strings.EqualFold(stage, models.StagePost) {
		ctrl.sendErrorResponse(w, "stage must be Pre or Post", http.StatusBadRequest)
		return
	}

	overrides := ctrl.thresholds.ApplyQuery(sessionFromContext(r.Context()), r.URL.Query())

	summary, err := ctrl.service.DashboardSummary(r.Context(), query, overrides)
	if err != nil {
		ctrl.logger.Error("Failed to build dashboard summary", "error", err, "department", query.Department)
		ctrl.sendServiceError(w, err)
		return
	}

	switch {
	case strings.EqualFold(stage, models.StagePre):
		ctrl.sendJSONResponse(w, summary.Pre, http.StatusOK)
	case strings.EqualFold(stage, models.StagePost):
		ctrl.sendJSONResponse(w, summary.Post, http.StatusOK)
	default:
		ctrl.sendJSONResponse(w, summary, http.StatusOK)
	}
}

func (ctrl *LeaderboardController) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := ctrl.service.Roles(r.Context())
	if err != nil {
		ctrl.logger.Error("Failed to list roles", "error", err)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, roles, http.StatusOK)
}
