package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/careerforward/career-quest/internal/types"
)

// Resume sources
const (
	ResumeSourceManual = "manual"
	ResumeSourceParsed = "parsed"
	ResumeSourceUpload = "upload"
)

// StoredResume is a user's current structured resume
type StoredResume struct {
	UserID    uuid.UUID           `json:"user_id"`
	Resume    *types.ParsedResume `json:"resume"`
	RawText   string              `json:"raw_text,omitempty"`
	Source    string              `json:"source"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ScoreContext is the request context a score was calculated for
type ScoreContext struct {
	TargetRole string `json:"target_role,omitempty"`
	Location   string `json:"location,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

// ScoreRecord is one immutable row of score history
type ScoreRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	ScoreContext
	types.ScoreResult
}
