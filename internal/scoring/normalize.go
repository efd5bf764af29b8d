package scoring

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/careerforward/career-quest/internal/parsing"
	"github.com/careerforward/career-quest/internal/types"
)

var validate = validator.New()

// Normalize returns a cleaned copy of the resume: strings trimmed, empty entries dropped,
// skills canonicalised and de-duplicated case-insensitively, and an email that fails
// validation cleared so evaluators treat it as missing. The input is never modified.
func Normalize(in *types.ParsedResume) *types.ParsedResume {
	if in == nil {
		return nil
	}

	out := &types.ParsedResume{
		Contact: types.Contact{
			Name:     strings.TrimSpace(in.Contact.Name),
			Email:    strings.TrimSpace(in.Contact.Email),
			Phone:    strings.TrimSpace(in.Contact.Phone),
			Location: strings.TrimSpace(in.Contact.Location),
		},
		Summary: strings.TrimSpace(in.Summary),
	}
	if out.Contact.Email != "" && validate.Var(out.Contact.Email, "required,email") != nil {
		out.Contact.Email = ""
	}

	for _, exp := range in.Experience {
		e := types.Experience{
			Company:     strings.TrimSpace(exp.Company),
			Title:       strings.TrimSpace(exp.Title),
			Location:    strings.TrimSpace(exp.Location),
			StartDate:   strings.TrimSpace(exp.StartDate),
			EndDate:     strings.TrimSpace(exp.EndDate),
			Current:     exp.Current,
			Description: strings.TrimSpace(exp.Description),
			Highlights:  trimAll(exp.Highlights),
		}
		if e.Company == "" && e.Title == "" && e.StartDate == "" && e.EndDate == "" &&
			e.Description == "" && len(e.Highlights) == 0 {
			continue
		}
		out.Experience = append(out.Experience, e)
	}

	for _, edu := range in.Education {
		e := types.Education{
			Institution: strings.TrimSpace(edu.Institution),
			Degree:      strings.TrimSpace(edu.Degree),
			Field:       strings.TrimSpace(edu.Field),
			StartDate:   strings.TrimSpace(edu.StartDate),
			EndDate:     strings.TrimSpace(edu.EndDate),
			GPA:         strings.TrimSpace(edu.GPA),
		}
		if e.Institution == "" && e.Degree == "" && e.Field == "" {
			continue
		}
		out.Education = append(out.Education, e)
	}

	seen := make(map[string]bool, len(in.Skills))
	for _, skill := range in.Skills {
		name := parsing.NormalizeSkillName(skill)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Skills = append(out.Skills, name)
	}

	for _, cert := range in.Certifications {
		c := types.Certification{
			Name:           strings.TrimSpace(cert.Name),
			Issuer:         strings.TrimSpace(cert.Issuer),
			DateObtained:   strings.TrimSpace(cert.DateObtained),
			ExpirationDate: strings.TrimSpace(cert.ExpirationDate),
		}
		if c.Name == "" && c.Issuer == "" {
			continue
		}
		out.Certifications = append(out.Certifications, c)
	}

	return out
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
