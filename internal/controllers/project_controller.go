package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"ProjectScoreService/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	maxUploadMemory = 32 << 20
	uploadFormField = "file"
)

type ProjectController struct {
	responder
	importService  ImportService
	scoringService ScoringService
	thresholds     ThresholdService
	validate       *validator.Validate
}

func NewProjectController(
	importService ImportService,
	scoringService ScoringService,
	thresholds ThresholdService,
	validate *validator.Validate,
	logger *slog.Logger,
) *ProjectController {
	return &ProjectController{
		responder:      responder{logger: logger},
		importService:  importService,
		scoringService: scoringService,
		thresholds:     thresholds,
		validate:       validate,
	}
}

func (ctrl *ProjectController) ImportProjects(w http.ResponseWriter, r *http.Request) {
	var req models.RequestImportProjects
	if !ctrl.decodeRequest(w, r, ctrl.validate, &req) {
		return
	}

	result, err := ctrl.importService.Replace(r.Context(), req.Projects)
	if err != nil {
		ctrl.logger.Error("Failed to import projects", "error", err, "count", len(req.Projects))
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, result, http.StatusCreated)
}

func (ctrl *ProjectController) ImportWorkbook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		ctrl.logger.Error("Failed to parse multipart form", "error", err)
		ctrl.sendErrorResponse(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		ctrl.sendErrorResponse(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ctrl.logger.Info("Importing workbook", "filename", header.Filename, "size", header.Size)

	result, err := ctrl.importService.ImportWorkbook(r.Context(), file)
	if err != nil {
		ctrl.logger.Error("Failed to import workbook", "error", err, "filename", header.Filename)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, result, http.StatusCreated)
}

func (ctrl *ProjectController) GetScorecard(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role == "" {
		ctrl.sendErrorResponse(w, "role parameter is required", http.StatusBadRequest)
		return
	}

	overrides := ctrl.thresholds.ApplyQuery(sessionFromContext(r.Context()), r.URL.Query())

	card, err := ctrl.scoringService.Scorecard(r.Context(), code, role, overrides)
	if err != nil {
		ctrl.logger.Error("Failed to build scorecard", "error", err, "projectCode", code, "role", role)
		ctrl.sendServiceError(w, err)
		return
	}

	ctrl.sendJSONResponse(w, card, http.StatusOK)
}
