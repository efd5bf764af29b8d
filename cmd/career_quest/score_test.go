package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{Scoring: scoring.DefaultRubric()}
}

func writeResume(t *testing.T, resume any) string {
	t.Helper()
	data, err := json.Marshal(resume)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func engineerResume() *types.ParsedResume {
	return &types.ParsedResume{
		Contact: types.Contact{Name: "Ana Ruiz", Email: "ana@example.com", Phone: "+1 512 555 0100", Location: "Seattle, WA"},
		Summary: "Backend engineer building reliable payment services in Go.",
		Experience: []types.Experience{
			{Company: "Acme", Title: "Software Engineer", StartDate: "2019-03", Current: true,
				Highlights: []string{"Cut p99 latency 40% by redesigning the ledger cache", "Led migration of 12 services to Kubernetes"}},
			{Company: "Initech", Title: "Junior Developer", StartDate: "2016-06", EndDate: "2019-02",
				Highlights: []string{"Built internal reporting APIs used by 300 analysts"}},
		},
		Education: []types.Education{{Institution: "UW", Degree: "Bachelor of Science", Field: "Computer Science", EndDate: "2016-05"}},
		Skills:    []string{"Go", "PostgreSQL", "Kubernetes", "gRPC", "Redis", "AWS", "Docker", "Terraform"},
	}
}

func TestRunScore_JSONResume(t *testing.T) {
	path := writeResume(t, engineerResume())
	var stdout, stderr bytes.Buffer

	err := runScore(context.Background(), testConfig(), zap.NewNop(), scoreOptions{
		resumeFile: path,
		targetRole: "Software Engineer",
		location:   "Seattle, WA",
		industry:   "software",
		verbose:    true,
	}, &stdout, &stderr)
	require.NoError(t, err)

	var result types.ScoreResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Greater(t, result.TotalScore, 0)
	assert.LessOrEqual(t, result.TotalScore, 100)
	require.NotNil(t, result.MarketData, "the built-in table covers software")
	assert.Equal(t, types.DemandHigh, result.MarketData.DemandLevel)
	assert.Greater(t, result.JobSeeker.MarketMatch, 0.0)

	assert.Contains(t, stderr.String(), "SCORE BREAKDOWN")
}

func TestRunScore_WritesOutFile(t *testing.T) {
	path := writeResume(t, engineerResume())
	out := filepath.Join(t.TempDir(), "score.json")
	var stdout bytes.Buffer

	err := runScore(context.Background(), testConfig(), zap.NewNop(), scoreOptions{
		resumeFile: path,
		outFile:    out,
	}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result types.ScoreResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Nil(t, result.MarketData)
}

func TestRunScore_RawTextOverride(t *testing.T) {
	path := writeResume(t, engineerResume())
	raw := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(raw, []byte("Ana Ruiz\nBackend engineer building reliable payment services in Go."), 0o644))

	var stdout bytes.Buffer
	err := runScore(context.Background(), testConfig(), zap.NewNop(), scoreOptions{
		resumeFile:  path,
		rawTextFile: raw,
	}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
}

func TestRunScore_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		contains string
	}{
		{
			name:     "missing file",
			setup:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			contains: "failed to read resume",
		},
		{
			name: "schema violation",
			setup: func(t *testing.T) string {
				return writeResume(t, map[string]any{"contact": map[string]any{"name": 42}})
			},
			contains: "not a valid ParsedResume",
		},
		{
			name:     "empty resume",
			setup:    func(t *testing.T) string { return writeResume(t, map[string]any{}) },
			contains: "failed to score resume",
		},
		{
			name: "document without api key",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "resume.txt")
				require.NoError(t, os.WriteFile(path, []byte("Ana Ruiz, engineer"), 0o644))
				return path
			},
			contains: "GEMINI_API_KEY is required",
		},
		{
			name: "unsupported extension",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "resume.png")
				require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o644))
				return path
			},
			contains: "unsupported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runScore(context.Background(), testConfig(), zap.NewNop(), scoreOptions{
				resumeFile: tt.setup(t),
			}, &bytes.Buffer{}, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRunParseResume_RequiresAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ana Ruiz, engineer"), 0o644))

	err := runParseResume(context.Background(), testConfig(), zap.NewNop(), parseOptions{inFile: path}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")

	err = runParseResume(context.Background(), testConfig(), zap.NewNop(), parseOptions{inFile: "resume.json"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already JSON")
}

func TestNewMarketProvider_FallsBackToStatic(t *testing.T) {
	provider, closeMarket := newMarketProvider(context.Background(), testConfig(), nil, zap.NewNop())
	defer closeMarket()

	md, err := provider.Lookup(context.Background(), scoring.MarketQuery{Industry: "healthcare", Location: "Remote"})
	require.NoError(t, err)
	require.NotNil(t, md)
	assert.Equal(t, types.DemandHigh, md.DemandLevel)

	md, err = provider.Lookup(context.Background(), scoring.MarketQuery{Industry: "underwater basket weaving"})
	require.NoError(t, err)
	assert.Nil(t, md)
}

func TestCheckWorkerConfig(t *testing.T) {
	cfg := testConfig()
	assert.ErrorContains(t, checkWorkerConfig(cfg), "DATABASE_URL")
	cfg.DatabaseURL = "postgres://localhost/cq"
	assert.ErrorContains(t, checkWorkerConfig(cfg), "RABBITMQ_URL")
	cfg.RabbitMQ.URL = "amqp://localhost"
	assert.ErrorContains(t, checkWorkerConfig(cfg), "S3_BUCKET")
	cfg.Storage.Bucket = "resumes"
	assert.ErrorContains(t, checkWorkerConfig(cfg), "GEMINI_API_KEY")
	cfg.Gemini.APIKey = "key"
	assert.NoError(t, checkWorkerConfig(cfg))
}
