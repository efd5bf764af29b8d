package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerforward/career-quest/internal/types"
)

// SaveResume replaces the user's current resume
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, resume *types.ParsedResume, rawText, source string) error {
	if resume == nil {
		return fmt.Errorf("resume is required")
	}
	if source == "" {
		source = ResumeSourceManual
	}
	jsonBytes, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO user_resumes (user_id, resume, raw_text, source)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET resume = $2, raw_text = $3, source = $4, updated_at = NOW()`,
		userID, jsonBytes, rawText, source,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume retrieves the user's current resume. Returns nil, nil when none is stored.
func (db *DB) GetResume(ctx context.Context, userID uuid.UUID) (*StoredResume, error) {
	var (
		sr      StoredResume
		content []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, resume, raw_text, source, created_at, updated_at
		 FROM user_resumes WHERE user_id = $1`,
		userID,
	).Scan(&sr.UserID, &content, &sr.RawText, &sr.Source, &sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	sr.Resume = &types.ParsedResume{}
	if err := json.Unmarshal(content, sr.Resume); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume: %w", err)
	}
	return &sr, nil
}
