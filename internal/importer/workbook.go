package importer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"ProjectScoreService/internal/models"

	"github.com/xuri/excelize/v2"
)

type SheetKind string

const (
	SheetSales     SheetKind = "sales"
	SheetDesign    SheetKind = "design"
	SheetOperation SheetKind = "operation"
)

var sheetOrder = []SheetKind{SheetSales, SheetDesign, SheetOperation}

type Stats struct {
	Sheets  map[SheetKind]string `json:"sheets"`
	Rows    int                  `json:"rows"`
	Skipped int                  `json:"skipped"`
}

// ClassifySheet recognizes export sheets by name.
func ClassifySheet(name string) (SheetKind, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "sales"):
		return SheetSales, true
	case strings.Contains(lower, "design"):
		return SheetDesign, true
	case strings.Contains(lower, "operation"), strings.Contains(lower, "ops"):
		return SheetOperation, true
	}
	return "", false
}

// ReadWorkbook parses a Sales/Design/Operations export into projects keyed by
// code. Rows sharing a code across sheets are merged in sheet order.
func ReadWorkbook(r io.Reader) ([]models.Project, Stats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	stats := Stats{Sheets: make(map[SheetKind]string)}
	for _, name := range f.GetSheetList() {
		kind, ok := ClassifySheet(name)
		if !ok {
			continue
		}
		stats.Sheets[kind] = name
	}

	m := newMerger()
	for _, kind := range sheetOrder {
		name, ok := stats.Sheets[kind]
		if !ok {
			continue
		}
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		read, skipped := m.addSheet(kind, rows)
		stats.Rows += read
		stats.Skipped += skipped
	}

	return m.projects(), stats, nil
}

type merger struct {
	byCode map[string]*models.Project
	order  []string
	seen   map[string]map[string]bool
}

func newMerger() *merger {
	return &merger{
		byCode: make(map[string]*models.Project),
		seen:   make(map[string]map[string]bool),
	}
}

func (m *merger) addSheet(kind SheetKind, rows [][]string) (read, skipped int) {
	if len(rows) == 0 {
		return 0, 0
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, cells := range rows[1:] {
		row := make(map[string]string, len(headers))
		numeric := make(map[string]float64, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			value := ""
			if i < len(cells) {
				value = cells[i]
			}
			row[h] = value
			numeric[h] = CleanNumber(value)
		}

		code := rowCode(row)
		if code == "" {
			skipped++
			continue
		}
		Derive(kind, numeric)
		m.apply(code, row, numeric)
		read++
	}
	return read, skipped
}

func rowCode(row map[string]string) string {
	for _, c := range codeColumns {
		if v, ok := row[c]; ok {
			if code := CleanCode(v); code != "" {
				return code
			}
		}
	}
	return ""
}

func (m *merger) apply(code string, row map[string]string, numeric map[string]float64) {
	p, ok := m.byCode[code]
	if !ok {
		p = &models.Project{Code: code}
		m.byCode[code] = p
		m.order = append(m.order, code)
		m.seen[code] = make(map[string]bool)
	}

	for _, meta := range metaColumns {
		for _, header := range meta.headers {
			raw, ok := row[header]
			if !ok {
				continue
			}
			if v := CleanString(raw); v != "" {
				setMeta(p, meta.field, v)
			}
			break
		}
	}

	for header, field := range dateColumns {
		if raw, ok := row[header]; ok {
			if t, ok := ParseDate(raw); ok {
				setDate(p, field, t)
			}
		}
	}

	seen := m.seen[code]
	for header, field := range metricColumns {
		v, ok := numeric[header]
		if !ok {
			continue
		}
		if v != 0 || !seen[field] {
			p.SetMetricValue(field, v)
			seen[field] = true
		}
	}
}

func (m *merger) projects() []models.Project {
	out := make([]models.Project, 0, len(m.order))
	for _, code := range m.order {
		out = append(out, *m.byCode[code])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
