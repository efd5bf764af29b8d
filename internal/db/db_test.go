package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforward/career-quest/internal/types"
)

func TestSchema(t *testing.T) {
	schema := Schema()
	for _, table := range []string{"users", "user_resumes", "score_history"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schema, "subscription_tier")
}

func TestClampScoreLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultScoreListLimit},
		{-3, DefaultScoreListLimit},
		{1, 1},
		{50, 50},
		{MaxScoreListLimit + 1, MaxScoreListLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampScoreLimit(tt.in), "limit %d", tt.in)
	}
}

func TestScoreRowEncoding(t *testing.T) {
	t.Run("without market data", func(t *testing.T) {
		result := &types.ScoreResult{
			TotalScore:    15,
			ResumeQuality: types.ResumeQualityScore{FormattingStructure: 4.2, SpellingGrammar: 7.5, Total: 11.7},
		}
		row, err := encodeScore(result)
		require.NoError(t, err)
		assert.Nil(t, row.marketData)
		assert.JSONEq(t, `[]`, string(row.recommendations))

		var rec ScoreRecord
		require.NoError(t, row.decode(&rec))
		assert.Nil(t, rec.MarketData)
		assert.NotNil(t, rec.Recommendations)
		assert.Equal(t, result.ResumeQuality, rec.ResumeQuality)
	})

	t.Run("with market data and recommendations", func(t *testing.T) {
		result := &types.ScoreResult{
			TotalScore: 80,
			JobSeeker:  types.JobSeekerScore{Tenure: 12, Total: 12},
			MarketData: &types.MarketData{DemandLevel: types.DemandHigh, LocalScore: 90},
			Recommendations: []types.Recommendation{
				{Category: "tenure", Title: "Show longer tenure", Priority: types.PriorityHigh, PotentialGain: 6.4},
			},
			CalculatedAt: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		}
		row, err := encodeScore(result)
		require.NoError(t, err)

		var rec ScoreRecord
		require.NoError(t, row.decode(&rec))
		assert.Equal(t, result.MarketData, rec.MarketData)
		assert.Equal(t, result.Recommendations, rec.Recommendations)
		assert.Equal(t, result.JobSeeker, rec.JobSeeker)
	})
}
