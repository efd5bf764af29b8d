package scoring

import "fmt"

func evaluateLength(text string, rubric Rubric) evaluation {
	words := countWords(text)
	lo, hi, cutoff := float64(rubric.IdealMinWords), float64(rubric.IdealMaxWords), float64(rubric.VerboseCutoffWords)
	w := float64(words)

	switch {
	case w < lo:
		return newEvaluation(CategoryLength, MaxLength, w/lo, []string{
			fmt.Sprintf("expand to at least %d words (currently %d)", rubric.IdealMinWords, words),
		})
	case w > hi:
		return newEvaluation(CategoryLength, MaxLength, (cutoff-w)/(cutoff-hi), []string{
			fmt.Sprintf("tighten to at most %d words (currently %d)", rubric.IdealMaxWords, words),
		})
	default:
		return newEvaluation(CategoryLength, MaxLength, 1, nil)
	}
}
