package scoring

import (
	"strings"

	"github.com/careerforward/career-quest/internal/types"
)

const (
	relevanceCoverageWeight = 0.8
	relevanceClarityWeight  = 0.2
	neutralRelevance        = 0.5
)

// evaluateRelevance measures how much of the target vocabulary the resume uses.
// Without a target it returns a neutral score.
func evaluateRelevance(r *types.ParsedResume, targets []string) evaluation {
	if len(targets) == 0 {
		return newEvaluation(CategoryRelevance, MaxRelevance, neutralRelevance, []string{
			"add a target role to get tailored keyword feedback",
		})
	}

	phrases := append([]string{r.Summary}, r.Skills...)
	clear := 0
	for _, exp := range r.Experience {
		phrases = append(phrases, exp.Title, exp.Description)
		phrases = append(phrases, exp.Highlights...)
		if exp.Description != "" || len(exp.Highlights) > 0 {
			clear++
		}
	}

	cov, missing := coverage(targets, tokenSet(phrases...))
	clarity := 0.0
	if len(r.Experience) > 0 {
		clarity = float64(clear) / float64(len(r.Experience))
	}

	var notes []string
	if len(missing) > 0 {
		notes = append(notes, "work these target keywords into your resume: "+strings.Join(missing, ", "))
	}
	if clarity < 1 {
		notes = append(notes, "describe what you did in each role")
	}
	return newEvaluation(CategoryRelevance, MaxRelevance, relevanceCoverageWeight*cov+relevanceClarityWeight*clarity, notes)
}
