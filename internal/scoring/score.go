package scoring

import (
	"math"

	"ProjectScoreService/internal/models"
)

type MetricScore struct {
	MetricID uint    `json:"metric_id"`
	Label    string  `json:"label"`
	Field    string  `json:"field"`
	Actual   float64 `json:"actual"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Points   float64 `json:"points"`
}

type ProjectScore struct {
	ProjectCode string        `json:"project_code"`
	ProjectName string        `json:"project_name"`
	Score       float64       `json:"score"`
	Stage       string        `json:"stage_bucket"`
	StageTotal  float64       `json:"stage_total"`
	Metrics     []MetricScore `json:"metrics,omitempty"`
}

// MetricPoints scales actual by the threshold span and caps the result at max.
// Values below min still earn proportional points.
func MetricPoints(actual, min, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return math.Min(actual*((max-min)+1)/max, max)
}

// StageTotals sums the achievable points per stage.
func StageTotals(metrics []MetricDef) map[string]float64 {
	totals := make(map[string]float64)
	for _, m := range metrics {
		totals[m.Stage] += m.Max
	}
	return totals
}

func ScoreProject(project *models.Project, metrics []MetricDef) ProjectScore {
	result := ProjectScore{
		Stage:   models.StagePre,
		Metrics: make([]MetricScore, 0),
	}
	if project == nil {
		return result
	}

	result.ProjectCode = project.Code
	result.ProjectName = project.DisplayName()
	result.Stage = StageBucket(project.Stage)
	result.StageTotal = StageTotals(metrics)[result.Stage]
	if result.StageTotal <= 0 {
		return result
	}

	earned := 0.0
	for _, m := range metrics {
		if m.Stage != result.Stage {
			continue
		}
		actual, _ := project.MetricValue(m.Field)
		points := MetricPoints(actual, m.Min, m.Max)
		earned += points
		result.Metrics = append(result.Metrics, MetricScore{
			MetricID: m.ID,
			Label:    m.Label,
			Field:    m.Field,
			Actual:   actual,
			Min:      m.Min,
			Max:      m.Max,
			Points:   points,
		})
	}

	result.Score = Round(earned, 1)
	return result
}
