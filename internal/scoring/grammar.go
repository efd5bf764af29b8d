package scoring

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// commonMisspellings lists frequent resume misspellings keyed by the wrong form.
var commonMisspellings = map[string]string{
	"accomodate":    "accommodate",
	"acheive":       "achieve",
	"acheived":      "achieved",
	"achievment":    "achievement",
	"acomplished":   "accomplished",
	"adress":        "address",
	"analize":       "analyze",
	"begining":      "beginning",
	"beleive":       "believe",
	"buisness":      "business",
	"calender":      "calendar",
	"collegue":      "colleague",
	"comunication":  "communication",
	"comittee":      "committee",
	"definately":    "definitely",
	"developement":  "development",
	"enviroment":    "environment",
	"excellant":     "excellent",
	"existance":     "existence",
	"experiance":    "experience",
	"goverment":     "government",
	"independant":   "independent",
	"knowlege":      "knowledge",
	"liason":        "liaison",
	"maintainance":  "maintenance",
	"maintenence":   "maintenance",
	"managment":     "management",
	"neccessary":    "necessary",
	"occured":       "occurred",
	"oppurtunity":   "opportunity",
	"orginization":  "organization",
	"perfomance":    "performance",
	"persue":        "pursue",
	"proffesional":  "professional",
	"recieve":       "receive",
	"recieved":      "received",
	"recomend":      "recommend",
	"relevent":      "relevant",
	"responsable":   "responsible",
	"resposible":    "responsible",
	"seperate":      "separate",
	"succesful":     "successful",
	"succesfully":   "successfully",
	"sucessful":     "successful",
	"teh":           "the",
	"tommorow":      "tomorrow",
	"untill":        "until",
	"wich":          "which",
	"writting":      "writing",
}

var abbreviations = map[string]bool{
	"e.g.": true, "i.e.": true, "etc.": true, "vs.": true, "inc.": true, "ltd.": true, "co.": true,
	"mr.": true, "ms.": true, "mrs.": true, "dr.": true, "st.": true, "jr.": true, "sr.": true,
	"jan.": true, "feb.": true, "mar.": true, "apr.": true, "aug.": true, "sep.": true, "sept.": true,
	"oct.": true, "nov.": true, "dec.": true, "no.": true, "approx.": true,
}

// grammarReport counts the heuristic errors found in a text.
type grammarReport struct {
	words          int
	misspellings   []string
	doubledWords   int
	lowercaseI     int
	lowercaseStart int
	doubledCommas  int
}

func (g grammarReport) errors() int {
	return len(g.misspellings) + g.doubledWords + g.lowercaseI + g.lowercaseStart + g.doubledCommas
}

func checkGrammar(text string) grammarReport {
	report := grammarReport{doubledCommas: strings.Count(text, ",,")}

	prev := ""
	sentenceStart := true
	for _, raw := range strings.Fields(text) {
		word := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		report.words++
		lower := strings.ToLower(word)

		if fix, ok := commonMisspellings[lower]; ok {
			report.misspellings = append(report.misspellings, fmt.Sprintf("%s (%s)", lower, fix))
		}
		if word == "i" {
			report.lowercaseI++
		}
		if lower == prev && isAlpha(lower) {
			report.doubledWords++
		}
		if sentenceStart && word != "i" && startsLowercase(word) && !looksLikeIdentifier(raw) {
			report.lowercaseStart++
		}

		prev = lower
		if strings.ContainsAny(raw, ",;:.!?") {
			prev = ""
		}
		sentenceStart = endsSentence(raw)
	}
	return report
}

// endsSentence reports whether a raw word closes a sentence.
func endsSentence(raw string) bool {
	trimmed := strings.TrimRight(raw, `"')]`)
	if !strings.HasSuffix(trimmed, ".") && !strings.HasSuffix(trimmed, "!") && !strings.HasSuffix(trimmed, "?") {
		return false
	}
	return !abbreviations[strings.ToLower(trimmed)]
}

func startsLowercase(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsLower(r) {
		return false
	}
	// Mixed-case brand names such as iPhone or eBay are written that way on purpose.
	return strings.IndexFunc(word, unicode.IsUpper) < 0
}

func looksLikeIdentifier(raw string) bool {
	return strings.Contains(raw, "@") || strings.Contains(raw, "://") || strings.HasPrefix(raw, "www.")
}

func isAlpha(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) < 0
}

func evaluateSpelling(text string, rubric Rubric) evaluation {
	report := checkGrammar(text)
	if report.words == 0 {
		return newEvaluation(CategorySpelling, MaxSpelling, 0, []string{"no text to check"})
	}

	density := float64(report.errors()) * 100 / float64(report.words)
	fraction := 1 - density/rubric.ErrorDensityCeiling

	var notes []string
	if len(report.misspellings) > 0 {
		sample := append([]string(nil), report.misspellings...)
		sort.Strings(sample)
		sample = dedupSorted(sample)
		if len(sample) > 3 {
			sample = sample[:3]
		}
		notes = append(notes, "fix misspellings ("+strings.Join(sample, ", ")+")")
	}
	if report.doubledWords > 0 {
		notes = append(notes, "remove repeated words")
	}
	if report.lowercaseI > 0 || report.lowercaseStart > 0 {
		notes = append(notes, "capitalize sentence starts and the word I")
	}
	if report.doubledCommas > 0 {
		notes = append(notes, "remove doubled commas")
	}
	return newEvaluation(CategorySpelling, MaxSpelling, fraction, notes)
}

func dedupSorted(values []string) []string {
	out := values[:0]
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			out = append(out, v)
		}
	}
	return out
}
