// Package types provides type definitions for structured data used throughout the career-quest system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ParsedResume is the structured resume produced by the parsing service.
// Every field is optional; the scoring engine tolerates partially populated values.
type ParsedResume struct {
	Contact        Contact         `json:"contact"`
	Summary        string          `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
}

// Contact holds the candidate's contact block
type Contact struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Experience is a single employment history entry.
// EndDate may be empty or a sentinel ("present", "current") for ongoing roles.
type Experience struct {
	Company     string   `json:"company,omitempty"`
	Title       string   `json:"title,omitempty"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Current     bool     `json:"current,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Education is a single education entry
type Education struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Certification is a professional certification
type Certification struct {
	Name           string `json:"name,omitempty"`
	Issuer         string `json:"issuer,omitempty"`
	DateObtained   string `json:"date_obtained,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// IsEmpty reports whether the resume carries no content in any section.
func (r *ParsedResume) IsEmpty() bool {
	if r == nil {
		return true
	}
	c := r.Contact
	return c.Name == "" && c.Email == "" && c.Phone == "" && c.Location == "" &&
		r.Summary == "" &&
		len(r.Experience) == 0 &&
		len(r.Education) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Certifications) == 0
}
