// Package scoring computes the Career Quest resume score: a deterministic 0-100 composite of
// Resume Quality (30 points) and Job-Seeker Fit (70 points) with ranked improvement recommendations.
package scoring

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/types"
)

// MarketQuery describes the labor market a resume is scored against.
type MarketQuery struct {
	TargetRole string
	Location   string
	Industry   string
	Skills     []string
}

// IsEmpty reports whether the query carries no market context.
func (q MarketQuery) IsEmpty() bool {
	return q.TargetRole == "" && q.Location == "" && q.Industry == ""
}

// MarketDataProvider supplies demand signals. A nil result with a nil error means no data.
type MarketDataProvider interface {
	Lookup(ctx context.Context, q MarketQuery) (*types.MarketData, error)
}

// Request carries the optional scoring context.
type Request struct {
	RawText    string
	TargetRole string
	Location   string
	Industry   string
}

// Config configures an Engine. All fields are optional.
type Config struct {
	Rubric Rubric
	Market MarketDataProvider
	Logger *zap.Logger
	Now    func() time.Time
}

// Engine scores resumes. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rubric Rubric
	market MarketDataProvider
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates an Engine, filling unset rubric fields with defaults.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		rubric: cfg.Rubric.Normalized(),
		market: cfg.Market,
		logger: cfg.Logger,
		now:    cfg.Now,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Rubric returns the curve parameters in effect.
func (e *Engine) Rubric() Rubric {
	return e.rubric
}

// CalculateScores scores a resume with the default rubric and no market data provider.
func CalculateScores(ctx context.Context, resume *types.ParsedResume, rawText, targetRole, location, industry string) (*types.ScoreResult, error) {
	return NewEngine(Config{}).Calculate(ctx, resume, Request{
		RawText:    rawText,
		TargetRole: targetRole,
		Location:   location,
		Industry:   industry,
	})
}

// Calculate scores a resume. The input is never modified. The only error is *InvalidInputError,
// returned when the resume is nil or has no content and no raw text is given.
func (e *Engine) Calculate(ctx context.Context, resume *types.ParsedResume, req Request) (*types.ScoreResult, error) {
	if resume == nil {
		return nil, &InvalidInputError{Message: "resume is required"}
	}
	r := Normalize(resume)
	if r.IsEmpty() && strings.TrimSpace(req.RawText) == "" {
		return nil, &InvalidInputError{Message: "resume has no content"}
	}

	req.TargetRole = strings.TrimSpace(req.TargetRole)
	req.Location = strings.TrimSpace(req.Location)
	req.Industry = strings.TrimSpace(req.Industry)

	now := e.now()
	targets := keywords(req.TargetRole, req.Industry)
	text := scoredText(r, req.RawText)

	md := e.lookupMarket(ctx, MarketQuery{
		TargetRole: req.TargetRole,
		Location:   req.Location,
		Industry:   req.Industry,
		Skills:     append([]string(nil), r.Skills...),
	})

	evals := []evaluation{
		evaluateFormatting(r),
		evaluateSpelling(text, e.rubric),
		evaluateLength(text, e.rubric),
		evaluateRelevance(r, targets),
		evaluateEducation(r, targets, e.rubric),
		evaluateTenure(r.Experience, now, e.rubric),
		evaluateGaps(r.Experience, now, e.rubric),
		evaluateMarket(r, targets, md, e.rubric),
	}

	rq := types.ResumeQualityScore{
		FormattingStructure: round1(evals[0].score),
		SpellingGrammar:     round1(evals[1].score),
		LengthBrevity:       round1(evals[2].score),
		RelevanceClarity:    round1(evals[3].score),
	}
	rq.Total = round1(rq.FormattingStructure + rq.SpellingGrammar + rq.LengthBrevity + rq.RelevanceClarity)

	js := types.JobSeekerScore{
		Education:   round1(evals[4].score),
		Tenure:      round1(evals[5].score),
		Gaps:        round1(evals[6].score),
		MarketMatch: round1(evals[7].score),
	}
	js.Total = round1(js.Education + js.Tenure + js.Gaps + js.MarketMatch)

	return &types.ScoreResult{
		TotalScore:      int(math.Round(rq.Total + js.Total)),
		ResumeQuality:   rq,
		JobSeeker:       js,
		MarketData:      md,
		Recommendations: recommend(evals, e.rubric),
		CalculatedAt:    now.UTC(),
	}, nil
}

// lookupMarket fetches market data under the rubric timeout. Any failure degrades to nil.
func (e *Engine) lookupMarket(ctx context.Context, q MarketQuery) *types.MarketData {
	if e.market == nil || q.IsEmpty() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.rubric.MarketTimeout)
	defer cancel()

	type result struct {
		md  *types.MarketData
		err error
	}
	ch := make(chan result, 1)
	go func() {
		md, err := e.market.Lookup(ctx, q)
		ch <- result{md, err}
	}()

	var res result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	switch {
	case res.err != nil:
		e.logger.Warn("market data unavailable, scoring without it",
			zap.String("industry", q.Industry),
			zap.String("location", q.Location),
			zap.Error(res.err))
		return nil
	case res.md == nil:
		return nil
	case !res.md.DemandLevel.Valid():
		e.logger.Warn("market data has unknown demand level, scoring without it",
			zap.String("demand_level", string(res.md.DemandLevel)))
		return nil
	}

	md := *res.md
	md.LocalScore = round1(clamp(md.LocalScore, 0, 100))
	md.RegionalScore = round1(clamp(md.RegionalScore, 0, 100))
	md.RemoteScore = round1(clamp(md.RemoteScore, 0, 100))
	return &md
}
