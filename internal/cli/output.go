package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	topColor    = color.New(color.FgGreen, color.Bold)
	middleColor = color.New(color.FgYellow)
	bottomColor = color.New(color.FgRed)
)

// percentileLabel buckets a percentile into top, middle and bottom thirds.
func percentileLabel(percentile int, useColors bool) string {
	text := strconv.Itoa(percentile)
	if !useColors {
		return text
	}
	switch {
	case percentile >= 67:
		return topColor.Sprint(text)
	case percentile >= 34:
		return middleColor.Sprint(text)
	default:
		return bottomColor.Sprint(text)
	}
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

func renderTable(table *tablewriter.Table, data [][]string) error {
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeLeaderboard(w io.Writer, board scoring.Leaderboard, cfg *Config) error {
	if cfg.Output == JSONOutput {
		return writeJSON(w, board)
	}

	if len(board.Rows) == 0 {
		_, err := fmt.Fprintf(w, "No scored projects for role %q\n", board.Role)
		return err
	}

	table := newTable(w, []string{"Rank", "Name", "Score", "Projects", "Percentile"})
	var data [][]string
	for _, row := range board.Rows {
		data = append(data, []string{
			strconv.Itoa(row.Rank),
			row.IndividualName,
			strconv.FormatFloat(row.TotalScore, 'f', 1, 64),
			strconv.Itoa(row.ProjectCount),
			percentileLabel(row.Percentile, cfg.UseColors),
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Role %s: %d individuals ranked\n", board.Role, len(board.Rows))
	return err
}

func writeHallOfFame(w io.Writer, fame scoring.HallOfFame, cfg *Config) error {
	if cfg.Output == JSONOutput {
		return writeJSON(w, fame)
	}

	departments := make([]string, 0, len(fame))
	for dept := range fame {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	table := newTable(w, []string{"Department", "Role", "Place", "Name", "Score"})
	var data [][]string
	for _, dept := range departments {
		roles := make([]string, 0, len(fame[dept]))
		for role := range fame[dept] {
			roles = append(roles, role)
		}
		sort.Strings(roles)

		for _, role := range roles {
			for i, entry := range fame[dept][role] {
				data = append(data, []string{
					dept,
					role,
					strconv.Itoa(i + 1),
					entry.Name,
					strconv.Itoa(entry.TotalScore),
				})
			}
		}
	}
	return renderTable(table, data)
}

func writeNormalizeResult(w io.Writer, result scoring.NormalizeResult, cfg *Config) error {
	if cfg.Output == JSONOutput {
		return writeJSON(w, result)
	}

	table := newTable(w, []string{"Group", "Manual Sum", "Remaining", "Auto Weights", "Auto Credit", "Updated"})
	return renderTable(table, [][]string{{
		strconv.FormatUint(uint64(result.GroupID), 10),
		strconv.FormatFloat(result.ManualSum, 'f', 2, 64),
		strconv.FormatFloat(result.Remaining, 'f', 2, 64),
		strconv.Itoa(result.AutoCount),
		strconv.FormatFloat(result.AutoCredit, 'f', 2, 64),
		strconv.Itoa(result.Updated),
	}})
}

func writeImportResult(w io.Writer, result *models.ImportResult, cfg *Config) error {
	if cfg.Output == JSONOutput {
		return writeJSON(w, result)
	}

	_, err := fmt.Fprintf(w, "Imported %d projects (%d rows skipped), batch %s\n",
		result.Imported, result.Skipped, result.BatchID)
	return err
}
