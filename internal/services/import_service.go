package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ProjectScoreService/internal/importer"
	"ProjectScoreService/internal/models"

	"github.com/google/uuid"
)

const (
	importWarningThreshold = 2 * time.Second
)

type ImportService struct {
	projectStore ProjectStore
	logger       *slog.Logger
	now          func() time.Time
}

func NewImportService(projectStore ProjectStore, logger *slog.Logger) *ImportService {
	return &ImportService{
		projectStore: projectStore,
		logger:       logger,
		now:          time.Now,
	}
}

// Replace validates the records and swaps them in as the full project set.
func (s *ImportService) Replace(ctx context.Context, projects []models.Project) (*models.ImportResult, error) {
	startTime := s.now()

	if err := s.validateProjects(projects); err != nil {
		return nil, err
	}

	if err := s.projectStore.ReplaceAll(ctx, projects); err != nil {
		return nil, fmt.Errorf("failed to replace projects: %w", err)
	}

	result := &models.ImportResult{
		BatchID:    uuid.NewString(),
		Imported:   len(projects),
		ImportedAt: s.now().UTC(),
	}
	s.logger.Info("Projects imported",
		"batch_id", result.BatchID,
		"count", result.Imported,
	)
	s.logPerformanceWarning(result.BatchID, startTime)
	return result, nil
}

func (s *ImportService) ImportWorkbook(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	projects, stats, err := importer.ReadWorkbook(r)
	if err != nil {
		return nil, err
	}
	if len(stats.Sheets) == 0 {
		s.logger.Warn("Workbook has no sales, design or operations sheet")
	}

	result, err := s.Replace(ctx, projects)
	if err != nil {
		return nil, err
	}
	result.Skipped = stats.Skipped
	return result, nil
}

func (s *ImportService) validateProjects(projects []models.Project) error {
	if len(projects) == 0 {
		return models.ErrEmptyImport
	}

	seen := make(map[string]struct{}, len(projects))
	for i := range projects {
		code := importer.CleanCode(projects[i].Code)
		if code == "" {
			return fmt.Errorf("%w: record %d", models.ErrInvalidProjectCode, i+1)
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("%w: %s", models.ErrDuplicateProjectCode, code)
		}
		seen[code] = struct{}{}
		projects[i].Code = code
		projects[i].ID = 0
	}
	return nil
}

func (s *ImportService) logPerformanceWarning(batchID string, startTime time.Time) {
	duration := s.now().Sub(startTime)
	if duration > importWarningThreshold {
		s.logger.Warn("Import execution time exceeded threshold",
			"batch_id", batchID,
			"duration", duration,
			"threshold", importWarningThreshold,
		)
	}
}
