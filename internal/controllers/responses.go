package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ProjectScoreService/internal/models"

	"github.com/go-playground/validator/v10"
)

const maxRequestBody = 8 << 20

type responder struct {
	logger *slog.Logger
}

func (rs responder) sendJSONResponse(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (rs responder) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	rs.sendJSONResponse(w, models.ErrorResponse{Error: models.Error{
		Code:    "ERROR",
		Message: message,
	}}, statusCode)
}

func (rs responder) sendNotFoundResponse(w http.ResponseWriter, message string) {
	rs.sendJSONResponse(w, models.ErrorResponse{Error: models.Error{
		Code:    "NOT_FOUND",
		Message: message,
	}}, http.StatusNotFound)
}

func (rs responder) sendConflictResponse(w http.ResponseWriter, message string) {
	rs.sendJSONResponse(w, models.ErrorResponse{Error: models.Error{
		Code:    "CONFLICT",
		Message: message,
	}}, http.StatusConflict)
}

func (rs responder) sendValidationResponse(w http.ResponseWriter, message string) {
	rs.sendJSONResponse(w, models.ErrorResponse{Error: models.Error{
		Code:    "VALIDATION",
		Message: message,
	}}, http.StatusBadRequest)
}

// sendServiceError maps domain sentinels onto HTTP statuses.
func (rs responder) sendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProjectNotFound),
		errors.Is(err, models.ErrMetricNotFound),
		errors.Is(err, models.ErrGroupNotFound),
		errors.Is(err, models.ErrDepartmentNotFound),
		errors.Is(err, models.ErrWeightNotFound):
		rs.sendNotFoundResponse(w, err.Error())
	case errors.Is(err, models.ErrDuplicateProjectCode):
		rs.sendConflictResponse(w, err.Error())
	case errors.Is(err, models.ErrEmptyImport),
		errors.Is(err, models.ErrInvalidProjectCode),
		errors.Is(err, models.ErrUnknownMetricField),
		errors.Is(err, models.ErrUnknownRole):
		rs.sendValidationResponse(w, err.Error())
	default:
		rs.sendErrorResponse(w, "internal server error", http.StatusInternalServerError)
	}
}

// decodeRequest reads a JSON body into req and runs struct validation.
func (rs responder) decodeRequest(w http.ResponseWriter, r *http.Request, validate *validator.Validate, req interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(req); err != nil {
		rs.logger.Error("Failed to decode request body", "error", err)
		rs.sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	if err := validate.Struct(req); err != nil {
		rs.logger.Warn("Request validation failed", "error", err)
		rs.sendValidationResponse(w, err.Error())
		return false
	}
	return true
}
