package controllers

import (
	"log/slog"
	"net/http"

	"ProjectScoreService/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type WeightController struct {
	responder
	service  WeightService
	validate *validator.Validate
}

func NewWeightController(service WeightService, validate *validator.Validate, logger *slog.Logger) *WeightController {
	return &WeightController{
		responder: responder{logger: logger},
		service:   service,
		validate:  validate,
	}
}

func (ctrl *WeightController) GetGroupWeights(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		ctrl.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	weights, err := ctrl.service.WeightsFor(r.Context(), groupID)
	if err != nil {
		ctrl.logger.Error("Failed to load group weights", "error", err, "groupID", groupID)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, weights, http.StatusOK)
}

func (ctrl *WeightController) SetWeight(w http.ResponseWriter, r *http.Request) {
	var req models.RequestSetWeight
	if !ctrl.decodeRequest(w, r, ctrl.validate, &req) {
		return
	}

	resp, err := ctrl.service.SetWeight(r.Context(), &req)
	if err != nil {
		ctrl.logger.Error("Failed to set weight", "error", err, "metricID", req.MetricID, "groupID", req.GroupID)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, resp, http.StatusOK)
}

func (ctrl *WeightController) RemoveWeight(w http.ResponseWriter, r *http.Request) {
	metricID, err := parseUintParam(r.URL.Query().Get("metric_id"))
	if err != nil {
		ctrl.sendErrorResponse(w, "metric_id parameter is required", http.StatusBadRequest)
		return
	}
	groupID, err := parseUintParam(r.URL.Query().Get("group_id"))
	if err != nil {
		ctrl.sendErrorResponse(w, "group_id parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := ctrl.service.RemoveWeight(r.Context(), metricID, groupID)
	if err != nil {
		ctrl.logger.Error("Failed to remove weight", "error", err, "metricID", metricID, "groupID", groupID)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, resp, http.StatusOK)
}

func (ctrl *WeightController) RecomputeGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		ctrl.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := ctrl.service.Recompute(r.Context(), groupID)
	if err != nil {
		ctrl.logger.Error("Failed to recompute group credits", "error", err, "groupID", groupID)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, result, http.StatusOK)
}
