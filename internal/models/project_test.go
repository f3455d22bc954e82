package models_test

import (
	"testing"

	"ProjectScoreService/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectMetricValue(t *testing.T) {
	p := &models.Project{Renders: 4, WPRRatio: 0.5}

	v, ok := p.MetricValue("renders")
	require.True(t, ok)
	assert.InDelta(t, 4.0, v, 1e-9)

	v, ok = p.MetricValue("wpr_ratio")
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-9)

	v, ok = p.MetricValue("missing")
	assert.False(t, ok)
	assert.Zero(t, v)

	var nilProject *models.Project
	_, ok = nilProject.MetricValue("renders")
	assert.False(t, ok)
}

func TestProjectSetters(t *testing.T) {
	var p models.Project

	assert.True(t, p.SetMetricValue("grn_created", 12))
	assert.False(t, p.SetMetricValue("sales_lead", 1))
	assert.InDelta(t, 12.0, p.GRNCreated, 1e-9)

	assert.True(t, p.SetStakeholder("ops_pm", "Ravi"))
	assert.False(t, p.SetStakeholder("renders", "Ravi"))
	assert.Equal(t, "Ravi", p.Stakeholder("ops_pm"))
	assert.Empty(t, p.Stakeholder("unknown"))
}

func TestFieldNameLists(t *testing.T) {
	metrics := models.MetricFieldNames()
	stakeholders := models.StakeholderFieldNames()

	assert.Len(t, metrics, 40)
	assert.Len(t, stakeholders, 18)
	assert.IsIncreasing(t, metrics)
	for _, name := range stakeholders {
		assert.False(t, models.IsMetricField(name), name)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alpha", (&models.Project{Code: "A", Name: "Alpha"}).DisplayName())
	assert.Equal(t, "A", (&models.Project{Code: "A"}).DisplayName())
}
