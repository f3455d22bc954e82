package services

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"github.com/google/uuid"
)

const (
	thresholdParamPrefix = "thresh_"
	ResetThresholdsParam = "reset_thresholds"
)

// ThresholdStore keeps per-session minimum threshold overrides. Callers get
// copies; the stored maps are never handed out.
type ThresholdStore struct {
	mu       sync.RWMutex
	sessions map[string]scoring.ThresholdOverrides
}

func NewThresholdStore() *ThresholdStore {
	return &ThresholdStore{
		sessions: make(map[string]scoring.ThresholdOverrides),
	}
}

func NewSessionID() string {
	return uuid.NewString()
}

func (s *ThresholdStore) Get(sessionID string) scoring.ThresholdOverrides {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID].Clone()
}

// Set merges values into the session's overrides.
func (s *ThresholdStore) Set(sessionID string, values map[string]float64) scoring.ThresholdOverrides {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.sessions[sessionID]
	for field, value := range values {
		current = current.With(field, value)
	}
	s.sessions[sessionID] = current
	return current.Clone()
}

func (s *ThresholdStore) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// ApplyQuery honours reset_thresholds and thresh_<stage>_<field> parameters,
// then returns the session's overrides. Unparsable values are ignored.
func (s *ThresholdStore) ApplyQuery(sessionID string, query url.Values) scoring.ThresholdOverrides {
	if query.Get(ResetThresholdsParam) != "" {
		s.Reset(sessionID)
	}

	values := ParseThresholdParams(query)
	if len(values) == 0 {
		return s.Get(sessionID)
	}
	return s.Set(sessionID, values)
}

// ParseThresholdParams keys overrides by field only. When both stages name
// the same field, keys are applied in sorted order so thresh_pre_ wins over
// thresh_post_.
func ParseThresholdParams(query url.Values) map[string]float64 {
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make(map[string]float64)
	for _, key := range keys {
		raw := query[key]
		if !strings.HasPrefix(key, thresholdParamPrefix) || len(raw) == 0 || raw[0] == "" {
			continue
		}
		parts := strings.SplitN(key, "_", 3)
		if len(parts) != 3 || parts[2] == "" {
			continue
		}
		if parts[1] != "pre" && parts[1] != "post" {
			continue
		}
		if !models.IsMetricField(parts[2]) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw[0]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values[parts[2]] = v
	}
	return values
}
