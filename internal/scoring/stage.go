package scoring

import (
	"math"
	"strings"

	"ProjectScoreService/internal/models"
)

var postStageMarkers = []string{"post", "exec", "ops", "handover"}

// StageBucket maps free-text project stages to Pre or Post.
func StageBucket(stage string) string {
	s := strings.ToLower(strings.TrimSpace(stage))
	for _, marker := range postStageMarkers {
		if strings.Contains(s, marker) {
			return models.StagePost
		}
	}
	return models.StagePre
}

// Round rounds half to even at the given number of decimals, so 0.25 -> 0.2
// and 12.5 -> 12 at zero decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}

// Percent returns count/total*100 rounded to one decimal, 0 for an empty total.
func Percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round(float64(count)/float64(total)*100, 1)
}
