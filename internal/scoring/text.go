package scoring

import (
	"strings"
	"unicode"

	"github.com/careerforward/career-quest/internal/types"
)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "of": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "with": true, "by": true, "from": true, "as": true, "or": true, "is": true,
	"are": true, "was": true, "were": true, "be": true, "been": true, "it": true, "its": true, "this": true,
	"that": true, "these": true, "those": true, "our": true, "your": true, "my": true, "we": true, "you": true,
	"i": true, "me": true, "he": true, "she": true, "they": true, "them": true, "his": true, "her": true,
	"their": true, "not": true, "but": true, "into": true, "over": true, "per": true, "via": true, "all": true,
	"any": true, "some": true, "more": true, "most": true, "other": true, "such": true, "than": true,
	"then": true, "so": true, "if": true, "about": true, "who": true, "what": true, "which": true,
	"role": true, "position": true, "job": true, "level": true, "team": true, "work": true,
	"senior": true, "junior": true, "lead": true, "staff": true, "principal": true, "mid": true, "entry": true,
	"sr": true, "jr": true, "ii": true, "iii": true, "remote": true, "hybrid": true, "industry": true,
}

// tokenize lower-cases s and splits it into terms, keeping the characters used by tech names
// such as "c++", "c#" and "node.js". Tokens shorter than two characters are dropped.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if len(f) < 2 {
			continue
		}
		tokens = append(tokens, stem(f))
	}
	return tokens
}

// stem folds simple plurals so "engineers" matches "engineer".
func stem(token string) string {
	if len(token) > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") &&
		!strings.ContainsAny(token, ".+#") {
		return token[:len(token)-1]
	}
	return token
}

// keywords returns the distinct non-stop-word terms of the given phrases in first-seen order.
func keywords(phrases ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, phrase := range phrases {
		for _, tok := range tokenize(phrase) {
			if stopWords[tok] || seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}

func tokenSet(phrases ...string) map[string]bool {
	set := make(map[string]bool)
	for _, phrase := range phrases {
		for _, tok := range tokenize(phrase) {
			set[tok] = true
		}
	}
	return set
}

// coverage returns the fraction of terms present in set along with the missing terms.
func coverage(terms []string, set map[string]bool) (float64, []string) {
	if len(terms) == 0 {
		return 0, nil
	}
	var missing []string
	hits := 0
	for _, t := range terms {
		if set[t] {
			hits++
		} else {
			missing = append(missing, t)
		}
	}
	return float64(hits) / float64(len(terms)), missing
}

// resumeText concatenates the prose fields of the resume, one field per line.
func resumeText(r *types.ParsedResume) string {
	var b strings.Builder
	write := func(s string) {
		if s == "" {
			return
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}

	write(r.Contact.Name)
	write(r.Summary)
	for _, exp := range r.Experience {
		write(exp.Title)
		write(exp.Company)
		write(exp.Description)
		for _, h := range exp.Highlights {
			write(h)
		}
	}
	for _, edu := range r.Education {
		write(edu.Degree)
		write(edu.Field)
		write(edu.Institution)
	}
	for _, cert := range r.Certifications {
		write(cert.Name)
	}
	if len(r.Skills) > 0 {
		write(strings.Join(r.Skills, ", "))
	}
	return b.String()
}

// scoredText is the text the spelling and length evaluators read: the raw document when the
// caller supplied it, otherwise the concatenated resume fields.
func scoredText(r *types.ParsedResume, rawText string) string {
	if strings.TrimSpace(rawText) != "" {
		return rawText
	}
	return resumeText(r)
}

// countWords counts whitespace-separated words that contain at least one letter or digit.
func countWords(text string) int {
	n := 0
	for _, w := range strings.Fields(text) {
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			n++
		}
	}
	return n
}

// relatedFields maps target keywords to education-field terms considered aligned with them.
var relatedFields = map[string][]string{
	"software":     {"computer", "computing", "software", "informatic", "information", "mathematic"},
	"engineer":     {"engineering", "computer", "mathematic", "physic"},
	"developer":    {"computer", "computing", "software", "information"},
	"backend":      {"computer", "computing", "software"},
	"frontend":     {"computer", "computing", "software", "design"},
	"data":         {"computer", "statistic", "mathematic", "data", "economic", "physic"},
	"analyst":      {"statistic", "mathematic", "economic", "finance", "business"},
	"scientist":    {"statistic", "mathematic", "physic", "biology", "chemistry", "computer"},
	"devop":        {"computer", "information", "software"},
	"security":     {"computer", "information", "cybersecurity"},
	"nurse":        {"nursing", "health", "medicine"},
	"nursing":      {"nursing", "health", "medicine"},
	"healthcare":   {"nursing", "health", "medicine", "biology", "public"},
	"finance":      {"finance", "accounting", "economic", "business"},
	"accountant":   {"accounting", "finance", "business"},
	"marketing":    {"marketing", "communication", "business", "advertising"},
	"sale":         {"business", "marketing", "communication"},
	"teacher":      {"education", "teaching"},
	"education":    {"education", "teaching"},
	"designer":     {"design", "art", "graphic"},
	"manager":      {"business", "management", "administration"},
	"product":      {"business", "computer", "design"},
	"mechanical":   {"engineering", "mechanical", "industrial"},
	"construction": {"engineering", "civil", "construction", "architecture"},
	"logistic":     {"logistic", "supply", "business", "operation"},
}

// alignedFieldTerms returns the target keywords plus the education terms related to them.
func alignedFieldTerms(targets []string) map[string]bool {
	set := make(map[string]bool, len(targets))
	for _, t := range targets {
		set[t] = true
		for _, f := range relatedFields[t] {
			set[f] = true
		}
	}
	return set
}
