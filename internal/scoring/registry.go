package scoring

import (
	"sort"
	"strings"

	"ProjectScoreService/internal/models"
)

// MetricDef is a metric as the engine sees it, with thresholds resolved.
type MetricDef struct {
	ID              uint    `json:"id"`
	Label           string  `json:"label"`
	Field           string  `json:"field"`
	DepartmentID    uint    `json:"department_id"`
	Stage           string  `json:"stage"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	SuccessCategory string  `json:"success_category,omitempty"`
	SuccessColor    string  `json:"success_color"`
}

// Registry is an immutable snapshot of metric configuration.
type Registry struct {
	metrics    []MetricDef
	byID       map[uint]int
	weights    map[uint]map[uint]int
	visibility map[uint]map[uint]struct{}
	allowed    map[uint]map[uint]struct{}
}

func NewRegistry(metrics []models.Metric, weights []models.MetricWeight, visibility []models.MetricVisibility) *Registry {
	r := &Registry{
		metrics:    make([]MetricDef, 0, len(metrics)),
		byID:       make(map[uint]int, len(metrics)),
		weights:    make(map[uint]map[uint]int),
		visibility: make(map[uint]map[uint]struct{}),
		allowed:    make(map[uint]map[uint]struct{}),
	}

	sorted := make([]models.Metric, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, m := range sorted {
		def := MetricDef{
			ID:           m.ID,
			Label:        m.Label,
			Field:        m.FieldName,
			DepartmentID: m.DepartmentID,
			Stage:        m.Stage,
			Min:          m.MinThreshold,
			Max:          m.MaxThreshold,
			SuccessColor: "secondary",
		}
		if m.SuccessCategory != nil {
			def.SuccessCategory = m.SuccessCategory.Name
			if m.SuccessCategory.Color != "" {
				def.SuccessColor = m.SuccessCategory.Color
			}
		}
		r.byID[m.ID] = len(r.metrics)
		r.metrics = append(r.metrics, def)

		for _, g := range m.VisibleToGroups {
			r.addVisibility(m.ID, g.ID)
		}
	}

	for _, v := range visibility {
		r.addVisibility(v.MetricID, v.UserGroupID)
	}

	for _, w := range weights {
		if w.Factor <= 0 {
			continue
		}
		if _, ok := r.byID[w.MetricID]; !ok {
			continue
		}
		if r.weights[w.UserGroupID] == nil {
			r.weights[w.UserGroupID] = make(map[uint]int)
		}
		r.weights[w.UserGroupID][w.MetricID] = w.Factor
		addToSet(r.allowed, w.MetricID, w.UserGroupID)
	}

	return r
}

func (r *Registry) addVisibility(metricID, groupID uint) {
	if _, ok := r.byID[metricID]; !ok {
		return
	}
	addToSet(r.visibility, groupID, metricID)
	addToSet(r.allowed, metricID, groupID)
}

func addToSet(sets map[uint]map[uint]struct{}, key, value uint) {
	if sets[key] == nil {
		sets[key] = make(map[uint]struct{})
	}
	sets[key][value] = struct{}{}
}

// MetricsFor lists metrics of one department and stage in id order.
// A zero department matches every department, an empty stage every stage.
func (r *Registry) MetricsFor(departmentID uint, stage string) []MetricDef {
	out := make([]MetricDef, 0)
	for _, m := range r.metrics {
		if departmentID != 0 && m.DepartmentID != departmentID {
			continue
		}
		if stage != "" && !strings.EqualFold(m.Stage, stage) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// WeightsFor returns metric id -> factor for every positive weight of the group.
func (r *Registry) WeightsFor(groupID uint) map[uint]int {
	out := make(map[uint]int, len(r.weights[groupID]))
	for metricID, factor := range r.weights[groupID] {
		out[metricID] = factor
	}
	return out
}

// ValidMetrics returns the metrics that count toward the group's score with
// the effective minimum applied.
func (r *Registry) ValidMetrics(groupID uint, overrides ThresholdOverrides) []MetricDef {
	out := make([]MetricDef, 0)
	weighted := r.weights[groupID]
	visible := r.visibility[groupID]
	for _, m := range r.metrics {
		_, hasWeight := weighted[m.ID]
		_, isVisible := visible[m.ID]
		if !hasWeight && !isVisible {
			continue
		}
		m.Min = overrides.EffectiveMin(m.Field, m.Min)
		out = append(out, m)
	}
	return out
}

// AllowedGroups is the union of legacy-visible and weighted groups for a metric.
func (r *Registry) AllowedGroups(metricID uint) []uint {
	groups := make([]uint, 0, len(r.allowed[metricID]))
	for g := range r.allowed[metricID] {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	return groups
}

func (r *Registry) IsAllowed(metricID, groupID uint) bool {
	_, ok := r.allowed[metricID][groupID]
	return ok
}

func (r *Registry) Metric(id uint) (MetricDef, bool) {
	i, ok := r.byID[id]
	if !ok {
		return MetricDef{}, false
	}
	return r.metrics[i], true
}

func (r *Registry) Len() int {
	return len(r.metrics)
}
