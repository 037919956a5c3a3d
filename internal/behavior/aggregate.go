package behavior

import (
	"math"

	"github.com/brandpulse/audience-cli/internal/model"
)

// Aggregate averages the bias contributions of the detected characteristics
// into one adjustment vector. For each category, the value is the arithmetic
// mean of the contributions from characteristics whose table defines that
// category, rounded to one decimal. Categories with no contributors are
// exactly 0.0 — which also means a set of contributions that cancels out is
// indistinguishable from no evidence at all; the justification step narrates
// both as the zero case.
func Aggregate(characteristics []Characteristic) map[model.Category]float64 {
	sums := make(map[model.Category]float64, len(model.Categories))
	counts := make(map[model.Category]int, len(model.Categories))

	for _, c := range characteristics {
		for category, value := range biasTables[c] {
			sums[category] += value
			counts[category]++
		}
	}

	adjustments := make(map[model.Category]float64, len(model.Categories))
	for _, category := range model.Categories {
		if n := counts[category]; n > 0 {
			adjustments[category] = round1(sums[category] / float64(n))
		} else {
			adjustments[category] = 0.0
		}
	}
	return adjustments
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
