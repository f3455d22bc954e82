package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestImportProjectsCreated(t *testing.T) {
	ts := newTestServer()
	ts.imports.On("Replace", mock.Anything, mock.MatchedBy(func(projects []models.Project) bool {
		return len(projects) == 2 && projects[0].Code == "PS-1"
	})).Return(&models.ImportResult{BatchID: "b-1", Imported: 2}, nil)

	rec := ts.do(t, http.MethodPost, "/projects/import", models.RequestImportProjects{
		Projects: []models.Project{{Code: "PS-1"}, {Code: "PS-2"}},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var result models.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Imported)
}

func TestImportProjectsDuplicateIsConflict(t *testing.T) {
	ts := newTestServer()
	ts.imports.On("Replace", mock.Anything, mock.Anything).Return(nil, models.ErrDuplicateProjectCode)

	rec := ts.do(t, http.MethodPost, "/projects/import", models.RequestImportProjects{
		Projects: []models.Project{{Code: "A"}, {Code: "a"}},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, rec).Code)
}

func TestImportProjectsRejectsEmptyBody(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(t, http.MethodPost, "/projects/import", models.RequestImportProjects{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, rec).Code)
	ts.imports.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestImportWorkbookUpload(t *testing.T) {
	ts := newTestServer()
	ts.imports.On("ImportWorkbook", mock.Anything, mock.Anything).
		Return(&models.ImportResult{BatchID: "b-2", Imported: 7, Skipped: 1}, nil)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "export.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("workbook bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/projects/import/xlsx", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var result models.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Skipped)
}

func TestImportWorkbookRequiresFile(t *testing.T) {
	ts := newTestServer()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("note", "no file"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/projects/import/xlsx", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetScorecard(t *testing.T) {
	ts := newTestServer()
	ts.scoring.On("Scorecard", mock.Anything, "PS-9", "SS", mock.Anything).Return(&scoring.Scorecard{
		ProjectCode: "PS-9", Score: 42.5, Stage: models.StagePost, Status: scoring.StatusDanger,
	}, nil)

	rec := ts.do(t, http.MethodGet, "/projects/PS-9/scorecard?role=SS", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var card scoring.Scorecard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	assert.Equal(t, 42.5, card.Score)
	assert.Equal(t, models.StagePost, card.Stage)
}

func TestGetScorecardErrors(t *testing.T) {
	ts := newTestServer()
	ts.scoring.On("Scorecard", mock.Anything, "MISSING", "SS", mock.Anything).Return(nil, models.ErrProjectNotFound)
	ts.scoring.On("Scorecard", mock.Anything, "PS-1", "Pilot", mock.Anything).Return(nil, models.ErrUnknownRole)

	rec := ts.do(t, http.MethodGet, "/projects/MISSING/scorecard?role=SS", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/projects/PS-1/scorecard?role=Pilot", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/projects/PS-1/scorecard", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
