package scoring

import (
	"sort"

	"ProjectScoreService/internal/models"
)

const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusDanger  = "danger"
)

type ScorecardLine struct {
	MetricID    uint    `json:"metric_id"`
	Label       string  `json:"metric"`
	Field       string  `json:"field"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Actual      float64 `json:"actual"`
	Points      float64 `json:"points_earned"`
	ProgressPct int     `json:"progress_pct"`
	Status      string  `json:"status"`
	BarStart    float64 `json:"bar_start"`
	BarEnd      float64 `json:"bar_end"`
	MarkerPct   float64 `json:"marker_pct"`
}

type Scorecard struct {
	ProjectCode string          `json:"project_code"`
	ProjectName string          `json:"project_name"`
	GroupID     uint            `json:"group_id"`
	Score       float64         `json:"score"`
	Stage       string          `json:"stage_bucket"`
	StageTotal  float64         `json:"stage_total"`
	Status      string          `json:"status"`
	Lines       []ScorecardLine `json:"lines"`
}

func BuildScorecard(project *models.Project, groupID uint, metrics []MetricDef) Scorecard {
	score := ScoreProject(project, metrics)
	card := Scorecard{
		ProjectCode: score.ProjectCode,
		ProjectName: score.ProjectName,
		GroupID:     groupID,
		Score:       score.Score,
		Stage:       score.Stage,
		StageTotal:  score.StageTotal,
		Status:      ProjectStatus(score.Score),
		Lines:       make([]ScorecardLine, 0, len(score.Metrics)),
	}

	for _, ms := range score.Metrics {
		start, end, marker := barBounds(ms.Actual, ms.Min, ms.Max)
		progress := 0
		if ms.Max > 0 {
			progress = int(ms.Points / ms.Max * 100)
		}
		card.Lines = append(card.Lines, ScorecardLine{
			MetricID:    ms.MetricID,
			Label:       ms.Label,
			Field:       ms.Field,
			Min:         ms.Min,
			Max:         ms.Max,
			Actual:      Round(ms.Actual, 1),
			Points:      Round(ms.Points, 1),
			ProgressPct: progress,
			Status:      MetricStatus(ms.Points, ms.Max),
			BarStart:    start,
			BarEnd:      end,
			MarkerPct:   marker,
		})
	}

	sort.SliceStable(card.Lines, func(i, j int) bool { return card.Lines[i].Max > card.Lines[j].Max })
	return card
}

func MetricStatus(points, max float64) string {
	switch {
	case points >= max && max > 0:
		return StatusSuccess
	case points > 0:
		return StatusWarning
	default:
		return StatusDanger
	}
}

func ProjectStatus(score float64) string {
	switch {
	case score >= 80:
		return StatusSuccess
	case score >= 50:
		return StatusWarning
	default:
		return StatusDanger
	}
}

// barBounds stretches [min, max] to include actual and places the marker on it.
func barBounds(actual, min, max float64) (start, end, marker float64) {
	start, end = min, max
	if actual < min {
		start = actual
	}
	if actual > max {
		end = actual
	}
	span := end - start
	if span == 0 {
		if actual > 0 {
			return start, end, 100
		}
		return start, end, 0
	}
	return start, end, (actual - start) / span * 100
}
