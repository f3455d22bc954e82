package scoring

import (
	"math"
	"sort"
	"strings"

	"ProjectScoreService/internal/models"
)

type BreakdownEntry struct {
	ProjectCode string  `json:"project_code"`
	ProjectName string  `json:"project_name"`
	Stage       string  `json:"stage"`
	SBU         string  `json:"sbu"`
	Score       float64 `json:"score"`
}

type LeaderboardRow struct {
	IndividualName string           `json:"individual_name"`
	TotalScore     float64          `json:"total_score"`
	ProjectCount   int              `json:"project_count"`
	Rank           int              `json:"rank"`
	Percentile     int              `json:"percentile"`
	Breakdown      []BreakdownEntry `json:"breakdown"`
}

type Leaderboard struct {
	Role string           `json:"role"`
	Link string           `json:"link_param,omitempty"`
	Rows []LeaderboardRow `json:"rows"`
}

type HallOfFameEntry struct {
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	LinkParam  string `json:"link_param"`
}

// HallOfFame maps department -> role key -> top entries.
type HallOfFame map[string]map[string][]HallOfFameEntry

const hallOfFameSize = 2

// BuildLeaderboard ranks the holders of role.Field by their summed project scores.
func BuildLeaderboard(projects []models.Project, role Role, metrics []MetricDef) Leaderboard {
	board := Leaderboard{Role: role.Key, Link: role.Link, Rows: make([]LeaderboardRow, 0)}

	index := make(map[string]int)
	for i := range projects {
		p := &projects[i]
		if strings.TrimSpace(p.Code) == "" {
			continue
		}
		name := p.Stakeholder(role.Field)
		key := normalizeKey(name)
		if key == "" {
			continue
		}

		pos, seen := index[key]
		if !seen {
			pos = len(board.Rows)
			index[key] = pos
			board.Rows = append(board.Rows, LeaderboardRow{IndividualName: name, Breakdown: make([]BreakdownEntry, 0)})
		}

		score := ScoreProject(p, metrics)
		row := &board.Rows[pos]
		row.TotalScore += score.Score
		row.ProjectCount++
		row.Breakdown = append(row.Breakdown, BreakdownEntry{
			ProjectCode: p.Code,
			ProjectName: p.DisplayName(),
			Stage:       score.Stage,
			SBU:         p.SBU,
			Score:       score.Score,
		})
	}

	rankRows(board.Rows)
	return board
}

func rankRows(rows []LeaderboardRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		return normalizeKey(rows[i].IndividualName) < normalizeKey(rows[j].IndividualName)
	})

	totals := make([]float64, len(rows))
	for i, r := range rows {
		totals[i] = r.TotalScore
	}

	for i := range rows {
		row := &rows[i]
		row.Rank = i + 1
		row.Percentile = percentileOf(row.TotalScore, totals)
		sort.SliceStable(row.Breakdown, func(a, b int) bool {
			return row.Breakdown[a].Score > row.Breakdown[b].Score
		})
		row.TotalScore = Round(row.TotalScore, 1)
	}
}

// percentileOf is the share of totals at or below score, floored.
func percentileOf(score float64, totals []float64) int {
	if len(totals) == 0 {
		return 0
	}
	atOrBelow := 0
	for _, t := range totals {
		if t <= score {
			atOrBelow++
		}
	}
	return int(math.Floor(float64(atOrBelow) / float64(len(totals)) * 100))
}

// BuildHallOfFame keeps the top two holders of every bound role. Roles
// without a group or without scored projects are left out.
func BuildHallOfFame(projects []models.Project, roles *RoleTable, registry *Registry, overrides ThresholdOverrides) HallOfFame {
	fame := make(HallOfFame)
	for _, role := range roles.Roles() {
		_, groupID, ok := roles.Lookup(role.Key)
		if !ok {
			continue
		}

		board := BuildLeaderboard(projects, role, registry.ValidMetrics(groupID, overrides))
		if len(board.Rows) == 0 {
			continue
		}

		top := board.Rows
		if len(top) > hallOfFameSize {
			top = top[:hallOfFameSize]
		}
		entries := make([]HallOfFameEntry, 0, len(top))
		for _, row := range top {
			entries = append(entries, HallOfFameEntry{
				Name:       row.IndividualName,
				TotalScore: int(Round(row.TotalScore, 0)),
				LinkParam:  role.Link,
			})
		}

		if fame[role.Department] == nil {
			fame[role.Department] = make(map[string][]HallOfFameEntry)
		}
		fame[role.Department][role.Key] = entries
	}
	return fame
}
