// Package types provides type definitions for structured data used throughout the career-quest system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// DemandLevel is the coarse labor-market demand for an industry/location pair
type DemandLevel string

// Demand levels reported by market-data providers
const (
	DemandLow    DemandLevel = "low"
	DemandMedium DemandLevel = "medium"
	DemandHigh   DemandLevel = "high"
)

// Valid reports whether the level is one of the known values.
func (d DemandLevel) Valid() bool {
	switch d {
	case DemandLow, DemandMedium, DemandHigh:
		return true
	}
	return false
}

// Priority ranks a recommendation for display
type Priority string

// Recommendation priorities
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ScoreResult is the output of a single scoring calculation.
// It is never mutated after it is returned; history rows are appended per calculation.
type ScoreResult struct {
	TotalScore      int                `json:"total_score"`
	ResumeQuality   ResumeQualityScore `json:"resume_quality"`
	JobSeeker       JobSeekerScore     `json:"job_seeker"`
	MarketData      *MarketData        `json:"market_data,omitempty"`
	Recommendations []Recommendation   `json:"recommendations"`
	CalculatedAt    time.Time          `json:"calculated_at"`
}

// ResumeQualityScore is the 0-30 document craftsmanship category
type ResumeQualityScore struct {
	FormattingStructure float64 `json:"formatting_structure"`
	SpellingGrammar     float64 `json:"spelling_grammar"`
	LengthBrevity       float64 `json:"length_brevity"`
	RelevanceClarity    float64 `json:"relevance_clarity"`
	Total               float64 `json:"total"`
}

// JobSeekerScore is the 0-70 candidate fundamentals category
type JobSeekerScore struct {
	Education   float64 `json:"education"`
	Tenure      float64 `json:"tenure"`
	Gaps        float64 `json:"gaps"`
	MarketMatch float64 `json:"market_match"`
	Total       float64 `json:"total"`
}

// MarketData holds external demand signals. Scores are 0-100.
type MarketData struct {
	DemandLevel   DemandLevel `json:"demand_level"`
	LocalScore    float64     `json:"local_score"`
	RegionalScore float64     `json:"regional_score"`
	RemoteScore   float64     `json:"remote_score"`
}

// Recommendation is an actionable improvement with its estimated gain in score points
type Recommendation struct {
	Category      string   `json:"category"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      Priority `json:"priority"`
	PotentialGain float64  `json:"potential_gain"`
}
