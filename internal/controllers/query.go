package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ProjectScoreService/internal/services"
)

const dateLayout = "2006-01-02"

// parseScoreQuery reads role, department, sbu and the login/start window.
// SBUs may be repeated or comma separated.
func parseScoreQuery(r *http.Request) (services.ScoreQuery, error) {
	q := r.URL.Query()
	query := services.ScoreQuery{
		Role:       strings.TrimSpace(q.Get("role")),
		Department: strings.TrimSpace(q.Get("department")),
	}

	for _, raw := range q["sbu"] {
		for _, sbu := range strings.Split(raw, ",") {
			if sbu = strings.TrimSpace(sbu); sbu != "" {
				query.SBUs = append(query.SBUs, sbu)
			}
		}
	}

	var err error
	if query.Start, err = parseDateParam(q.Get("start")); err != nil {
		return query, fmt.Errorf("invalid start date: %w", err)
	}
	if query.End, err = parseDateParam(q.Get("end")); err != nil {
		return query, fmt.Errorf("invalid end date: %w", err)
	}
	if query.Start != nil && query.End != nil && query.End.Before(*query.Start) {
		return query, fmt.Errorf("end date %s is before start date %s",
			query.End.Format(dateLayout), query.Start.Format(dateLayout))
	}
	return query, nil
}

func parseDateParam(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseUintParam(raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(v), nil
}
