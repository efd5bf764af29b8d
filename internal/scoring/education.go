package scoring

import (
	"strings"

	"github.com/careerforward/career-quest/internal/types"
)

type degreeLevel int

const (
	levelNone degreeLevel = iota
	levelUnrecognized
	levelHighSchool
	levelCertificate
	levelAssociate
	levelBachelor
	levelMaster
	levelDoctorate
)

var (
	doctorateAbbrevs = map[string]bool{"phd": true, "dphil": true, "edd": true, "md": true, "jd": true, "dba": true}
	masterAbbrevs    = map[string]bool{"ms": true, "msc": true, "ma": true, "mba": true, "meng": true, "mfa": true, "mph": true, "med": true, "mca": true, "mtech": true}
	bachelorAbbrevs  = map[string]bool{"bs": true, "bsc": true, "ba": true, "beng": true, "bba": true, "bfa": true, "btech": true, "bsn": true, "ab": true}
	associateAbbrevs = map[string]bool{"aa": true, "as": true, "aas": true, "asn": true}
)

// classifyDegree maps a free-text degree to a credential level. Dots are removed so that
// "Ph.D." and "B.S." match their abbreviations.
func classifyDegree(degree, institution string) degreeLevel {
	d := strings.ToLower(strings.ReplaceAll(degree, ".", ""))
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(d, func(r rune) bool { return r == ' ' || r == ',' || r == '(' || r == ')' || r == '/' || r == '-' }) {
		words[w] = true
	}
	hasAny := func(set map[string]bool) bool {
		for w := range words {
			if set[w] {
				return true
			}
		}
		return false
	}

	switch {
	case strings.Contains(d, "doctor") || hasAny(doctorateAbbrevs):
		return levelDoctorate
	case strings.Contains(d, "master") || hasAny(masterAbbrevs):
		return levelMaster
	case strings.Contains(d, "bachelor") || hasAny(bachelorAbbrevs):
		return levelBachelor
	case strings.Contains(d, "associate") || hasAny(associateAbbrevs):
		return levelAssociate
	case strings.Contains(d, "high school") || strings.Contains(d, "secondary") || words["ged"]:
		return levelHighSchool
	case strings.Contains(d, "certificat") || strings.Contains(d, "diploma"):
		return levelCertificate
	case d != "" || strings.TrimSpace(institution) != "":
		return levelUnrecognized
	default:
		return levelNone
	}
}

func (t DegreeTiers) weight(level degreeLevel) float64 {
	switch level {
	case levelDoctorate:
		return t.Doctorate
	case levelMaster:
		return t.Master
	case levelBachelor:
		return t.Bachelor
	case levelAssociate:
		return t.Associate
	case levelCertificate:
		return t.Certificate
	case levelHighSchool:
		return t.HighSchool
	case levelUnrecognized:
		return t.Unrecognized
	default:
		return 0
	}
}

// evaluateEducation scores the highest credential plus a bonus when any entry's field
// aligns with the target. Adding entries can only raise the best tier or add alignment.
func evaluateEducation(r *types.ParsedResume, targets []string, rubric Rubric) evaluation {
	best := 0.0
	for _, edu := range r.Education {
		if w := rubric.Degrees.weight(classifyDegree(edu.Degree, edu.Institution)); w > best {
			best = w
		}
	}
	if len(r.Certifications) > 0 && rubric.Degrees.Certificate > best {
		best = rubric.Degrees.Certificate
	}

	if best == 0 {
		return newEvaluation(CategoryEducation, MaxEducation, 0, []string{"add your education or certifications"})
	}

	var notes []string
	aligned := false
	if len(targets) > 0 {
		terms := alignedFieldTerms(targets)
		for _, edu := range r.Education {
			for tok := range tokenSet(edu.Field, edu.Degree) {
				if terms[tok] {
					aligned = true
					break
				}
			}
			if aligned {
				break
			}
		}
	}

	fraction := best
	if aligned {
		fraction += rubric.FieldAlignmentBonus
	} else {
		notes = append(notes, "highlight coursework or certifications related to your target role")
	}
	if best < rubric.Degrees.Bachelor {
		notes = append(notes, "consider a certification to strengthen your credentials")
	}
	return newEvaluation(CategoryEducation, MaxEducation, fraction, notes)
}
