package scoring

import "math"

// Category identifies a sub-score. The declaration order is the tie-break order for recommendations.
type Category string

const (
	CategoryFormatting Category = "formatting_structure"
	CategorySpelling   Category = "spelling_grammar"
	CategoryLength     Category = "length_brevity"
	CategoryRelevance  Category = "relevance_clarity"
	CategoryEducation  Category = "education"
	CategoryTenure     Category = "tenure"
	CategoryGaps       Category = "gaps"
	CategoryMarket     Category = "market_match"
)

var categoryOrder = map[Category]int{
	CategoryFormatting: 0,
	CategorySpelling:   1,
	CategoryLength:     2,
	CategoryRelevance:  3,
	CategoryEducation:  4,
	CategoryTenure:     5,
	CategoryGaps:       6,
	CategoryMarket:     7,
}

// evaluation is the unrounded output of one evaluator. Notes describe what cost points and
// feed the recommendation text.
type evaluation struct {
	category Category
	score    float64
	max      float64
	notes    []string
}

func newEvaluation(category Category, max, fraction float64, notes []string) evaluation {
	return evaluation{
		category: category,
		score:    clamp(fraction, 0, 1) * max,
		max:      max,
		notes:    notes,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
