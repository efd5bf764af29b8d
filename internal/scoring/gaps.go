package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/careerforward/career-quest/internal/types"
)

// employmentGaps merges overlapping periods and returns the month length of every gap
// between consecutive coverage blocks.
func employmentGaps(periods []period) []float64 {
	sorted := sortedByStart(periods)
	if len(sorted) < 2 {
		return nil
	}

	var gaps []float64
	coveredUntil := sorted[0].end
	for _, p := range sorted[1:] {
		if p.start.After(coveredUntil) {
			gaps = append(gaps, monthsBetween(coveredUntil, p.start))
		}
		if p.end.After(coveredUntil) {
			coveredUntil = p.end
		}
	}
	return gaps
}

func evaluateGaps(entries []types.Experience, now time.Time, rubric Rubric) evaluation {
	periods := experiencePeriods(entries, now)
	if len(periods) == 0 {
		return newEvaluation(CategoryGaps, MaxGaps, 0, []string{"add dates so your timeline can be assessed"})
	}

	penalised, longest := 0.0, 0.0
	for _, g := range employmentGaps(periods) {
		penalised += math.Max(0, g-rubric.GapGraceMonths)
		longest = math.Max(longest, g)
	}

	var notes []string
	if penalised > 0 {
		notes = append(notes, fmt.Sprintf("address employment gaps (longest %.0f months) with freelance work, study or volunteering", longest))
	}
	return newEvaluation(CategoryGaps, MaxGaps, 1-penalised/rubric.GapZeroMonths, notes)
}
