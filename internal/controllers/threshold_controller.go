package controllers

import (
	"log/slog"
	"net/http"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/services"

	"github.com/go-playground/validator/v10"
)

type ThresholdController struct {
	responder
	store    ThresholdService
	validate *validator.Validate
}

func NewThresholdController(store ThresholdService, validate *validator.Validate, logger *slog.Logger) *ThresholdController {
	return &ThresholdController{
		responder: responder{logger: logger},
		store:     store,
		validate:  validate,
	}
}

func (ctrl *ThresholdController) GetThresholds(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())
	overrides := ctrl.store.ApplyQuery(sessionID, r.URL.Query())

	ctrl.sendJSONResponse(w, models.ResponseThresholds{
		SessionID: sessionID,
		Overrides: overrides.Values(),
	}, http.StatusOK)
}

func (ctrl *ThresholdController) SetThresholds(w http.ResponseWriter, r *http.Request) {
	var req models.RequestSetThresholds
	if !ctrl.decodeRequest(w, r, ctrl.validate, &req) {
		return
	}

	for field := range req.Overrides {
		if !models.IsMetricField(field) {
			ctrl.sendValidationResponse(w, models.ErrUnknownMetricField.Error()+": "+field)
			return
		}
	}

	sessionID := sessionFromContext(r.Context())
	overrides := ctrl.store.Set(sessionID, req.Overrides)
	ctrl.logger.Info("Threshold overrides updated", "sessionID", sessionID, "count", overrides.Len())

	ctrl.sendJSONResponse(w, models.ResponseThresholds{
		SessionID: sessionID,
		Overrides: overrides.Values(),
	}, http.StatusOK)
}

func (ctrl *ThresholdController) ResetThresholds(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromContext(r.Context())
	ctrl.store.Reset(sessionID)

	ctrl.sendJSONResponse(w, models.ResponseThresholds{
		SessionID: sessionID,
		Overrides: map[string]float64{},
	}, http.StatusOK)
}

var _ ThresholdService = (*services.ThresholdStore)(nil)
