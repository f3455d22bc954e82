package scoring_test

import (
	"testing"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryFixture() *scoring.Registry {
	metrics := []models.Metric{
		{ID: 3, Label: "Site Images", FieldName: "site_images", DepartmentID: 3, Stage: models.StagePost, MinThreshold: 1, MaxThreshold: 20},
		{ID: 1, Label: "Renders", FieldName: "renders", DepartmentID: 2, Stage: models.StagePre, MinThreshold: 1, MaxThreshold: 10,
			SuccessCategory: &models.SuccessCategory{Name: "Quality", Color: "success"}},
		{ID: 2, Label: "CAD Files", FieldName: "cad_files", DepartmentID: 2, Stage: models.StagePre, MinThreshold: 2, MaxThreshold: 10,
			VisibleToGroups: []models.UserGroup{{ID: 20}}},
		{ID: 4, Label: "Orphan", FieldName: "boq", DepartmentID: 1, Stage: models.StagePre, MinThreshold: 1, MaxThreshold: 10},
	}
	weights := []models.MetricWeight{
		{MetricID: 1, UserGroupID: 10, Factor: 5},
		{MetricID: 3, UserGroupID: 10, Factor: 2},
		{MetricID: 2, UserGroupID: 10, Factor: 0},
		{MetricID: 99, UserGroupID: 10, Factor: 3},
	}
	visibility := []models.MetricVisibility{{MetricID: 3, UserGroupID: 20}}
	return scoring.NewRegistry(metrics, weights, visibility)
}

func TestRegistryMetricsFor(t *testing.T) {
	reg := registryFixture()

	design := reg.MetricsFor(2, models.StagePre)
	require.Len(t, design, 2)
	assert.Equal(t, uint(1), design[0].ID)
	assert.Equal(t, uint(2), design[1].ID)
	assert.Equal(t, "Quality", design[0].SuccessCategory)
	assert.Equal(t, "success", design[0].SuccessColor)
	assert.Equal(t, "secondary", design[1].SuccessColor)

	assert.Empty(t, reg.MetricsFor(2, models.StagePost))
	assert.Len(t, reg.MetricsFor(0, ""), 4)
}

func TestRegistryWeightsForSkipsInactive(t *testing.T) {
	reg := registryFixture()

	assert.Equal(t, map[uint]int{1: 5, 3: 2}, reg.WeightsFor(10))
	assert.Empty(t, reg.WeightsFor(20))
}

func TestRegistryValidMetrics(t *testing.T) {
	reg := registryFixture()

	forTen := reg.ValidMetrics(10, scoring.ThresholdOverrides{})
	require.Len(t, forTen, 2)
	assert.Equal(t, []uint{1, 3}, []uint{forTen[0].ID, forTen[1].ID})

	forTwenty := reg.ValidMetrics(20, scoring.NewThresholdOverrides(map[string]float64{"cad_files": 6}))
	require.Len(t, forTwenty, 2)
	assert.Equal(t, "cad_files", forTwenty[0].Field)
	assert.InDelta(t, 6.0, forTwenty[0].Min, 1e-9)
	assert.InDelta(t, 1.0, forTwenty[1].Min, 1e-9)

	stored, ok := reg.Metric(2)
	require.True(t, ok)
	assert.InDelta(t, 2.0, stored.Min, 1e-9, "overrides must not leak into the registry")

	assert.Empty(t, reg.ValidMetrics(30, scoring.ThresholdOverrides{}))
}

func TestRegistryAllowedGroups(t *testing.T) {
	reg := registryFixture()

	assert.Equal(t, []uint{10, 20}, reg.AllowedGroups(3))
	assert.Equal(t, []uint{20}, reg.AllowedGroups(2))
	assert.Empty(t, reg.AllowedGroups(4))
	assert.True(t, reg.IsAllowed(1, 10))
	assert.False(t, reg.IsAllowed(1, 20))
}
