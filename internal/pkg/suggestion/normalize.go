package suggestion

import (
	"strings"

	"github.com/quokkabay/quokkabay/internal/modules/model"
)

// Normalize drops unnamed entries, trims text fields and maps cost ranges onto the
// closed enum. It runs before EnsureCoordinates so fallback offsets follow the final order.
func Normalize(activities []model.Activity) []model.Activity {
	out := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		a.Name = strings.TrimSpace(a.Name)
		if a.Name == "" {
			continue
		}
		a.Description = strings.TrimSpace(a.Description)
		a.WhyItMatches = strings.TrimSpace(a.WhyItMatches)
		a.Link = strings.TrimSpace(a.Link)
		a.CostRange = NormalizeCostRange(string(a.CostRange))
		out = append(out, a)
	}
	return out
}

// NormalizeCostRange maps free text onto Free, $, $$ or $$$. Unknown values become $$.
func NormalizeCostRange(s string) model.CostRange {
	t := strings.TrimSpace(s)
	if strings.EqualFold(t, string(model.CostFree)) {
		return model.CostFree
	}

	n := 0
	for n < len(t) && t[n] == '$' {
		n++
	}
	switch {
	case n == 1:
		return model.CostLow
	case n == 2:
		return model.CostMedium
	case n >= 3:
		return model.CostHigh
	}

	if strings.Contains(strings.ToLower(t), "free") {
		return model.CostFree
	}
	return model.CostMedium
}
