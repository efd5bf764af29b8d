package scoring

import (
	"github.com/careerforward/career-quest/internal/types"
)

// Section weights of the formatting evaluator; they sum to 1.
const (
	weightContact    = 0.25
	weightSummary    = 0.15
	weightExperience = 0.25
	weightEducation  = 0.15
	weightSkills     = 0.10
	weightLayout     = 0.05
	weightOrdering   = 0.05
)

func evaluateFormatting(r *types.ParsedResume) evaluation {
	var notes []string
	fraction := 0.0

	contact := 0.0
	if r.Contact.Name != "" {
		contact += 0.4
	} else {
		notes = append(notes, "add your full name")
	}
	if r.Contact.Email != "" {
		contact += 0.3
	} else {
		notes = append(notes, "add a valid email address")
	}
	if r.Contact.Phone != "" {
		contact += 0.15
	} else {
		notes = append(notes, "add a phone number")
	}
	if r.Contact.Location != "" {
		contact += 0.15
	} else {
		notes = append(notes, "add your city or region")
	}
	fraction += weightContact * contact

	if r.Summary != "" {
		fraction += weightSummary
	} else {
		notes = append(notes, "add a professional summary")
	}

	if len(r.Experience) > 0 {
		complete := 0
		for _, exp := range r.Experience {
			if exp.Company != "" && exp.Title != "" && exp.StartDate != "" {
				complete++
			}
		}
		fraction += weightExperience * float64(complete) / float64(len(r.Experience))
		if complete < len(r.Experience) {
			notes = append(notes, "fill in the missing role details")
		}
	} else {
		notes = append(notes, "add a work experience section")
	}

	if len(r.Education) > 0 {
		fraction += weightEducation
	} else {
		notes = append(notes, "add an education section")
	}

	if len(r.Skills) > 0 {
		fraction += weightSkills
	} else {
		notes = append(notes, "add a skills section")
	}

	layouts := dateFamiliesUsed(r)
	if len(layouts) > 0 {
		if len(layouts) == 1 {
			fraction += weightLayout
		} else {
			notes = append(notes, "write every date in the same format")
		}
		if mostRecentFirst(r.Experience) {
			fraction += weightOrdering
		} else {
			notes = append(notes, "list roles from most recent to oldest")
		}
	} else {
		notes = append(notes, "add dates to your roles")
	}

	return newEvaluation(CategoryFormatting, MaxFormatting, fraction, notes)
}

// dateFamiliesUsed returns the distinct written date formats across all dated entries.
func dateFamiliesUsed(r *types.ParsedResume) map[dateFamily]bool {
	layouts := make(map[dateFamily]bool)
	add := func(s string) {
		if _, dl, ok := parseDate(s); ok {
			layouts[dl.family] = true
		}
	}
	for _, exp := range r.Experience {
		add(exp.StartDate)
		add(exp.EndDate)
	}
	for _, edu := range r.Education {
		add(edu.StartDate)
		add(edu.EndDate)
	}
	for _, cert := range r.Certifications {
		add(cert.DateObtained)
		add(cert.ExpirationDate)
	}
	return layouts
}

// mostRecentFirst reports whether dated experience entries are ordered by descending start date.
func mostRecentFirst(entries []types.Experience) bool {
	var prev *types.Experience
	for i := range entries {
		if _, _, ok := parseDate(entries[i].StartDate); !ok {
			continue
		}
		if prev != nil {
			a, _, _ := parseDate(prev.StartDate)
			b, _, _ := parseDate(entries[i].StartDate)
			if b.After(a) {
				return false
			}
		}
		prev = &entries[i]
	}
	return true
}
