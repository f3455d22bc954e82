package scoring_test

import (
	"testing"

	"ProjectScoreService/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestThresholdOverrides(t *testing.T) {
	var empty scoring.ThresholdOverrides
	assert.InDelta(t, 3.0, empty.EffectiveMin("renders", 3), 1e-9)
	assert.Zero(t, empty.Len())

	withRenders := empty.With("renders", 7)
	assert.InDelta(t, 7.0, withRenders.EffectiveMin("renders", 3), 1e-9)
	assert.Zero(t, empty.Len(), "With must not mutate the receiver")

	source := map[string]float64{"boq": 2}
	fromMap := scoring.NewThresholdOverrides(source)
	source["boq"] = 9
	assert.InDelta(t, 2.0, fromMap.EffectiveMin("boq", 1), 1e-9)

	clone := fromMap.Clone().With("renders", 0)
	assert.Equal(t, 1, fromMap.Len())
	assert.Equal(t, 2, clone.Len())
	assert.InDelta(t, 0.0, clone.EffectiveMin("renders", 5), 1e-9)

	assert.Equal(t, map[string]float64{}, empty.Values())
}
