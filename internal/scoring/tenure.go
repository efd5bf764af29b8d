package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/careerforward/career-quest/internal/types"
)

const (
	tenureAverageWeight = 0.6
	tenureLongestWeight = 0.4
)

func evaluateTenure(entries []types.Experience, now time.Time, rubric Rubric) evaluation {
	periods := experiencePeriods(entries, now)
	if len(periods) == 0 {
		return newEvaluation(CategoryTenure, MaxTenure, 0, []string{"add start and end dates to your roles"})
	}

	total, longest := 0.0, 0.0
	short := 0
	for _, p := range periods {
		m := p.months()
		total += m
		longest = math.Max(longest, m)
		if !p.ongoing && !p.inferred && m < rubric.ShortStintMonths {
			short++
		}
	}
	avg := total / float64(len(periods))

	base := tenureAverageWeight*math.Min(1, avg/rubric.TenureAvgTargetMonths) +
		tenureLongestWeight*math.Min(1, longest/rubric.TenureLongestTargetMonths)
	penalty := math.Min(rubric.ShortStintPenaltyCap, float64(short)*rubric.ShortStintPenalty)

	var notes []string
	if short > 0 {
		notes = append(notes, fmt.Sprintf("explain or group %d short-term roles (under %.0f months)", short, rubric.ShortStintMonths))
	}
	if avg < rubric.TenureAvgTargetMonths {
		notes = append(notes, fmt.Sprintf("average tenure is %.0f months; emphasise long-running responsibilities", avg))
	}
	return newEvaluation(CategoryTenure, MaxTenure, base-penalty, notes)
}
