package scoring_test

import (
	"testing"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStageSummary(t *testing.T) {
	metrics := []models.Metric{
		{ID: 1, Label: "Renders", FieldName: "renders", DepartmentID: 2, Stage: models.StagePre, MinThreshold: 5, MaxThreshold: 10},
		{ID: 2, Label: "CAD", FieldName: "cad_files", DepartmentID: 2, Stage: models.StagePre, MinThreshold: 1, MaxThreshold: 10},
		{ID: 3, Label: "Images", FieldName: "site_images", DepartmentID: 2, Stage: models.StagePost, MinThreshold: 1, MaxThreshold: 10},
	}
	registry := scoring.NewRegistry(metrics, []models.MetricWeight{{MetricID: 2, UserGroupID: 8, Factor: 1}}, nil)
	projects := []models.Project{
		{Code: "A", Name: "Alpha", Stage: "Design", Renders: 6, CADFiles: 0},
		{Code: "B", Name: "Beta", Stage: "Design", Renders: 2, CADFiles: 3},
		{Code: "C", Name: "Gamma", Stage: "Design", Renders: 5},
		{Code: "D", Name: "Delta", Stage: "Execution", Renders: 100},
	}

	summary := scoring.BuildStageSummary(projects, models.StagePre, registry, 2, 0, scoring.ThresholdOverrides{})

	assert.Equal(t, 3, summary.Total)
	require.Len(t, summary.Cards, 2)
	renders := summary.Cards[0]
	assert.Equal(t, 2, renders.Count)
	assert.InDelta(t, 66.7, renders.Pct, 1e-9)
	assert.True(t, renders.Primary)
	assert.Equal(t, []scoring.ProjectRef{{Code: "A", Name: "Alpha"}, {Code: "C", Name: "Gamma"}}, renders.Projects)

	scoped := scoring.BuildStageSummary(projects, models.StagePre, registry, 2, 8,
		scoring.NewThresholdOverrides(map[string]float64{"renders": 6}))
	require.Len(t, scoped.Cards, 2)
	assert.False(t, scoped.Cards[0].Primary)
	assert.True(t, scoped.Cards[1].Primary)
	assert.Equal(t, 1, scoped.Cards[0].Count)
	assert.InDelta(t, 6.0, scoped.Cards[0].Threshold, 1e-9)
}

func TestBuildStageSummaryWithoutProjects(t *testing.T) {
	registry := scoring.NewRegistry([]models.Metric{
		{ID: 1, FieldName: "renders", DepartmentID: 2, Stage: models.StagePost, MaxThreshold: 10},
	}, nil, nil)

	summary := scoring.BuildStageSummary(nil, models.StagePost, registry, 2, 0, scoring.ThresholdOverrides{})

	require.Len(t, summary.Cards, 1)
	assert.Zero(t, summary.Cards[0].Pct)
	assert.Zero(t, summary.Total)
}
