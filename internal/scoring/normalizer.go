package scoring

// CreditBudget is the total credit shared by the weights of one group.
const CreditBudget = 100.0

type WeightAssignment struct {
	MetricID uint    `json:"metric_id"`
	GroupID  uint    `json:"group_id"`
	IsManual bool    `json:"is_manual"`
	Credit   float64 `json:"credit"`
}

type NormalizeResult struct {
	GroupID    uint    `json:"group_id"`
	ManualSum  float64 `json:"manual_sum"`
	Remaining  float64 `json:"remaining"`
	AutoCount  int     `json:"auto_count"`
	AutoCredit float64 `json:"auto_credit"`
	Updated    int     `json:"updated"`
}

// NormalizeCredits splits whatever budget the manual weights leave over
// evenly across the auto weights. Manual credits are never touched, and a
// manual sum above the budget leaves zero for the rest.
func NormalizeCredits(groupID uint, weights []WeightAssignment) ([]WeightAssignment, NormalizeResult) {
	result := NormalizeResult{GroupID: groupID}
	out := make([]WeightAssignment, len(weights))
	copy(out, weights)

	for _, w := range out {
		if w.IsManual {
			result.ManualSum += w.Credit
		} else {
			result.AutoCount++
		}
	}

	result.Remaining = CreditBudget - result.ManualSum
	if result.Remaining < 0 {
		result.Remaining = 0
	}

	if result.AutoCount == 0 {
		return out, result
	}

	result.AutoCredit = Round(result.Remaining/float64(result.AutoCount), 2)
	for i := range out {
		if out[i].IsManual {
			continue
		}
		if out[i].Credit != result.AutoCredit {
			result.Updated++
		}
		out[i].Credit = result.AutoCredit
	}

	return out, result
}
