package scoring

import "maps"

// ThresholdOverrides replaces stored minimum thresholds by metric field name.
// The zero value is usable and overrides nothing.
type ThresholdOverrides struct {
	values map[string]float64
}

func NewThresholdOverrides(values map[string]float64) ThresholdOverrides {
	return ThresholdOverrides{values: maps.Clone(values)}
}

func (o ThresholdOverrides) EffectiveMin(field string, stored float64) float64 {
	if v, ok := o.values[field]; ok {
		return v
	}
	return stored
}

// With returns a copy carrying the extra override.
func (o ThresholdOverrides) With(field string, value float64) ThresholdOverrides {
	next := o.Clone()
	if next.values == nil {
		next.values = make(map[string]float64)
	}
	next.values[field] = value
	return next
}

func (o ThresholdOverrides) Clone() ThresholdOverrides {
	return ThresholdOverrides{values: maps.Clone(o.values)}
}

func (o ThresholdOverrides) Len() int {
	return len(o.values)
}

func (o ThresholdOverrides) Values() map[string]float64 {
	out := maps.Clone(o.values)
	if out == nil {
		out = map[string]float64{}
	}
	return out
}
