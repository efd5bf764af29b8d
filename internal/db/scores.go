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

// DefaultScoreListLimit caps ListScores when no limit is given
const DefaultScoreListLimit = 20

// MaxScoreListLimit is the largest page ListScores returns
const MaxScoreListLimit = 100

const scoreColumns = `id, user_id, total_score, resume_quality, job_seeker, market_data,
	recommendations, target_role, location, industry, calculated_at`

// scoreRow holds the encoded JSONB columns of a score_history row
type scoreRow struct {
	resumeQuality   []byte
	jobSeeker       []byte
	marketData      []byte
	recommendations []byte
}

func encodeScore(result *types.ScoreResult) (*scoreRow, error) {
	var (
		row scoreRow
		err error
	)
	if row.resumeQuality, err = json.Marshal(result.ResumeQuality); err != nil {
		return nil, fmt.Errorf("failed to marshal resume quality: %w", err)
	}
	if row.jobSeeker, err = json.Marshal(result.JobSeeker); err != nil {
		return nil, fmt.Errorf("failed to marshal job seeker score: %w", err)
	}
	if result.MarketData != nil {
		if row.marketData, err = json.Marshal(result.MarketData); err != nil {
			return nil, fmt.Errorf("failed to marshal market data: %w", err)
		}
	}
	recs := result.Recommendations
	if recs == nil {
		recs = []types.Recommendation{}
	}
	if row.recommendations, err = json.Marshal(recs); err != nil {
		return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	return &row, nil
}

func (row *scoreRow) decode(rec *ScoreRecord) error {
	if err := json.Unmarshal(row.resumeQuality, &rec.ResumeQuality); err != nil {
		return fmt.Errorf("failed to unmarshal resume quality: %w", err)
	}
	if err := json.Unmarshal(row.jobSeeker, &rec.JobSeeker); err != nil {
		return fmt.Errorf("failed to unmarshal job seeker score: %w", err)
	}
	if len(row.marketData) > 0 {
		rec.MarketData = &types.MarketData{}
		if err := json.Unmarshal(row.marketData, rec.MarketData); err != nil {
			return fmt.Errorf("failed to unmarshal market data: %w", err)
		}
	}
	rec.Recommendations = []types.Recommendation{}
	if len(row.recommendations) > 0 {
		if err := json.Unmarshal(row.recommendations, &rec.Recommendations); err != nil {
			return fmt.Errorf("failed to unmarshal recommendations: %w", err)
		}
	}
	return nil
}

func scanScore(row pgx.Row) (*ScoreRecord, error) {
	var (
		rec ScoreRecord
		raw scoreRow
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.TotalScore, &raw.resumeQuality, &raw.jobSeeker,
		&raw.marketData, &raw.recommendations, &rec.TargetRole, &rec.Location, &rec.Industry,
		&rec.CalculatedAt)
	if err != nil {
		return nil, err
	}
	if err := raw.decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// InsertScore appends a calculation to the user's score history. Rows are never updated.
func (db *DB) InsertScore(ctx context.Context, userID uuid.UUID, result *types.ScoreResult, sc ScoreContext) (uuid.UUID, error) {
	if result == nil {
		return uuid.Nil, fmt.Errorf("score result is required")
	}
	row, err := encodeScore(result)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO score_history (user_id, total_score, resume_quality, job_seeker, market_data,
		     recommendations, target_role, location, industry, calculated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		userID, result.TotalScore, row.resumeQuality, row.jobSeeker, row.marketData,
		row.recommendations, sc.TargetRole, sc.Location, sc.Industry, result.CalculatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert score: %w", err)
	}
	return id, nil
}

// ListScores returns the user's score history, newest first
func (db *DB) ListScores(ctx context.Context, userID uuid.UUID, limit int) ([]ScoreRecord, error) {
	limit = ClampScoreLimit(limit)

	rows, err := db.pool.Query(ctx,
		`SELECT `+scoreColumns+` FROM score_history
		 WHERE user_id = $1
		 ORDER BY calculated_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	records := []ScoreRecord{}
	for rows.Next() {
		rec, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scores: %w", err)
	}
	return records, nil
}

// GetLatestScore returns the most recent calculation. Returns nil, nil when there is none.
func (db *DB) GetLatestScore(ctx context.Context, userID uuid.UUID) (*ScoreRecord, error) {
	rec, err := scanScore(db.pool.QueryRow(ctx,
		`SELECT `+scoreColumns+` FROM score_history
		 WHERE user_id = $1
		 ORDER BY calculated_at DESC, id DESC
		 LIMIT 1`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest score: %w", err)
	}
	return rec, nil
}

// ClampScoreLimit maps a requested page size into [1, MaxScoreListLimit]
func ClampScoreLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultScoreListLimit
	case limit > MaxScoreListLimit:
		return MaxScoreListLimit
	default:
		return limit
	}
}
