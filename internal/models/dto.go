package models

import "time"

type ImportResult struct {
	BatchID    string    `json:"batch_id"`
	Imported   int       `json:"imported"`
	Skipped    int       `json:"skipped"`
	ImportedAt time.Time `json:"imported_at"`
}

type ResponseMetric struct {
	Metric              Metric   `json:"metric"`
	RecalculationErrors []string `json:"recalculation_errors,omitempty"`
}

type ResponseWeight struct {
	Weight              *MetricWeight `json:"weight,omitempty"`
	RecalculationErrors []string      `json:"recalculation_errors,omitempty"`
}

type ResponseThresholds struct {
	SessionID string             `json:"session_id"`
	Overrides map[string]float64 `json:"overrides"`
}
