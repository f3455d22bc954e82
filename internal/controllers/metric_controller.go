package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"ProjectScoreService/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type MetricController struct {
	responder
	service  MetricService
	validate *validator.Validate
}

func NewMetricController(service MetricService, validate *validator.Validate, logger *slog.Logger) *MetricController {
	return &MetricController{
		responder: responder{logger: logger},
		service:   service,
		validate:  validate,
	}
}

func (ctrl *MetricController) ListMetrics(w http.ResponseWriter, r *http.Request) {
	department := strings.TrimSpace(r.URL.Query().Get("department"))
	stage := strings.TrimSpace(r.URL.Query().Get("stage"))

	metrics, err := ctrl.service.ListMetrics(r.Context(), department, stage)
	if err != nil {
		ctrl.logger.Error("Failed to list metrics", "error", err, "department", department, "stage", stage)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, metrics, http.StatusOK)
}

func (ctrl *MetricController) CreateMetric(w http.ResponseWriter, r *http.Request) {
	var req models.RequestCreateMetric
	if !ctrl.decodeRequest(w, r, ctrl.validate, &req) {
		return
	}

	resp, err := ctrl.service.CreateMetric(r.Context(), &req)
	if err != nil {
		ctrl.logger.Error("Failed to create metric", "error", err, "fieldName", req.FieldName)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, resp, http.StatusCreated)
}

func (ctrl *MetricController) UpdateMetric(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		ctrl.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req models.RequestUpdateMetric
	if !ctrl.decodeRequest(w, r, ctrl.validate, &req) {
		return
	}

	resp, err := ctrl.service.UpdateMetric(r.Context(), id, &req)
	if err != nil {
		ctrl.logger.Error("Failed to update metric", "error", err, "metricID", id)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, resp, http.StatusOK)
}

func (ctrl *MetricController) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := ctrl.service.ListGroups(r.Context())
	if err != nil {
		ctrl.logger.Error("Failed to list groups", "error", err)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, groups, http.StatusOK)
}
