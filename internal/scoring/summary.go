package scoring

import "ProjectScoreService/internal/models"

type ProjectRef struct {
	Code string `json:"project_code"`
	Name string `json:"project_name"`
}

type SummaryCard struct {
	MetricID        uint         `json:"metric_id"`
	Label           string       `json:"label"`
	Field           string       `json:"field"`
	Threshold       float64      `json:"threshold"`
	Count           int          `json:"count"`
	Pct             float64      `json:"pct"`
	SuccessCategory string       `json:"success_category,omitempty"`
	SuccessColor    string       `json:"success_color"`
	Primary         bool         `json:"primary"`
	Projects        []ProjectRef `json:"projects"`
}

type StageSummary struct {
	Stage string        `json:"stage"`
	Total int           `json:"total"`
	Cards []SummaryCard `json:"cards"`
}

// BuildStageSummary counts, per metric, the projects of the stage bucket that
// reach the effective minimum. With groupID 0 every card is primary.
func BuildStageSummary(projects []models.Project, stage string, registry *Registry, departmentID uint, groupID uint, overrides ThresholdOverrides) StageSummary {
	inStage := make([]*models.Project, 0, len(projects))
	for i := range projects {
		if StageBucket(projects[i].Stage) == stage {
			inStage = append(inStage, &projects[i])
		}
	}

	summary := StageSummary{Stage: stage, Total: len(inStage), Cards: make([]SummaryCard, 0)}
	for _, m := range registry.MetricsFor(departmentID, stage) {
		threshold := overrides.EffectiveMin(m.Field, m.Min)
		card := SummaryCard{
			MetricID:        m.ID,
			Label:           m.Label,
			Field:           m.Field,
			Threshold:       threshold,
			SuccessCategory: m.SuccessCategory,
			SuccessColor:    m.SuccessColor,
			Primary:         groupID == 0 || registry.IsAllowed(m.ID, groupID),
			Projects:        make([]ProjectRef, 0),
		}
		for _, p := range inStage {
			v, _ := p.MetricValue(m.Field)
			if v >= threshold {
				card.Count++
				card.Projects = append(card.Projects, ProjectRef{Code: p.Code, Name: p.Name})
			}
		}
		card.Pct = Percent(card.Count, summary.Total)
		summary.Cards = append(summary.Cards, card)
	}
	return summary
}
