package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/careerforward/career-quest/internal/types"
)

var recommendationTitles = map[Category]string{
	CategoryFormatting: "Improve resume structure",
	CategorySpelling:   "Fix spelling and grammar",
	CategoryLength:     "Adjust resume length",
	CategoryRelevance:  "Tailor your resume to the target role",
	CategoryEducation:  "Strengthen your education section",
	CategoryTenure:     "Show stability in your work history",
	CategoryGaps:       "Explain employment gaps",
	CategoryMarket:     "Align your skills with market demand",
}

var recommendationFallbacks = map[Category]string{
	CategoryFormatting: "Make sure every core section is present and consistently formatted.",
	CategorySpelling:   "Proofread the document for spelling and grammar mistakes.",
	CategoryLength:     "Keep the resume between one and two pages of substantive content.",
	CategoryRelevance:  "Mirror the language of the roles you are applying for.",
	CategoryEducation:  "Add degrees, courses or certifications relevant to your goals.",
	CategoryTenure:     "Highlight long-running roles and what you achieved in them.",
	CategoryGaps:       "Account for time between roles with projects, study or volunteering.",
	CategoryMarket:     "Add skills that employers in your target market are asking for.",
}

// recommend derives one recommendation per evaluation below the full-marks threshold, ranked by
// potential gain with ties broken by category order. The top third is high priority, the middle
// third medium and the rest low.
func recommend(evals []evaluation, rubric Rubric) []types.Recommendation {
	recs := make([]types.Recommendation, 0, len(evals))
	order := make(map[int]int, len(evals))
	for _, ev := range evals {
		if ev.score >= rubric.RecommendationThreshold*ev.max {
			continue
		}
		gain := round1(rubric.GainFraction * (ev.max - ev.score))
		if gain <= 0 {
			continue
		}
		order[len(recs)] = categoryOrder[ev.category]
		recs = append(recs, types.Recommendation{
			Category:      string(ev.category),
			Title:         recommendationTitles[ev.category],
			Description:   describe(ev),
			PotentialGain: gain,
		})
	}

	idx := make([]int, len(recs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := recs[idx[a]], recs[idx[b]]
		if ra.PotentialGain != rb.PotentialGain {
			return ra.PotentialGain > rb.PotentialGain
		}
		return order[idx[a]] < order[idx[b]]
	})

	ranked := make([]types.Recommendation, len(recs))
	n := len(recs)
	highCut := int(math.Ceil(float64(n) / 3))
	mediumCut := int(math.Ceil(float64(2*n) / 3))
	for i, j := range idx {
		rec := recs[j]
		switch {
		case i < highCut:
			rec.Priority = types.PriorityHigh
		case i < mediumCut:
			rec.Priority = types.PriorityMedium
		default:
			rec.Priority = types.PriorityLow
		}
		ranked[i] = rec
	}
	return ranked
}

func describe(ev evaluation) string {
	if len(ev.notes) == 0 {
		return recommendationFallbacks[ev.category]
	}
	s := strings.Join(ev.notes, "; ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
