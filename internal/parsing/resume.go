// Package parsing turns uploaded resume documents into structured ParsedResume JSON:
// text extraction for PDF, DOCX, HTML and plain text, then LLM-based field extraction.
package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/llm"
	"github.com/careerforward/career-quest/internal/logger"
	"github.com/careerforward/career-quest/internal/prompts"
	"github.com/careerforward/career-quest/internal/types"
)

// maxResumeChars bounds the text sent to the model.
const maxResumeChars = 60000

// ResumeParser extracts a ParsedResume from cleaned resume text using an LLM.
type ResumeParser struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
}

// NewResumeParser creates a parser backed by the given client.
func NewResumeParser(client llm.Client, logger *zap.Logger) *ResumeParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResumeParser{client: client, tier: llm.TierStandard, logger: logger}
}

// ParseResume is a convenience wrapper that creates a Gemini client for a single parse.
func ParseResume(ctx context.Context, text string, apiKey string, logger *zap.Logger) (*types.ParsedResume, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	return NewResumeParser(client, logger).Parse(ctx, text)
}

// Parse extracts structured fields from resume text. The response is unmarshalled leniently;
// when the JSON is malformed the model is asked once to repair it.
func (p *ResumeParser) Parse(ctx context.Context, text string) (*types.ParsedResume, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, &ValidationError{Field: "text", Message: "resume text is empty"}
	}
	if len(cleaned) > maxResumeChars {
		p.logger.Debug("truncating resume text", zap.Int("chars", len(cleaned)))
		cleaned = cleaned[:maxResumeChars]
	}

	prompt := prompts.Format(prompts.MustGet("parsing.json", "extract-resume"), map[string]string{
		"ResumeText": cleaned,
	})

	response, err := p.client.GenerateJSON(ctx, prompt, p.tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content from LLM", Cause: err}
	}

	resume, err := decodeResume(response)
	if err != nil {
		p.logger.Warn("resume JSON did not parse, asking model to repair it",
			zap.Error(err),
			zap.String("response", logger.Truncate(response, 200)))
		resume, err = p.repair(ctx, response, err)
		if err != nil {
			return nil, err
		}
	}

	postProcessResume(resume)
	if resume.IsEmpty() {
		return nil, &ValidationError{Message: "no resume content could be extracted"}
	}

	p.logger.Debug("parsed resume",
		zap.Int("experience", len(resume.Experience)),
		zap.Int("education", len(resume.Education)),
		zap.Int("skills", len(resume.Skills)))
	return resume, nil
}

func (p *ResumeParser) repair(ctx context.Context, response string, cause error) (*types.ParsedResume, error) {
	prompt := prompts.Format(prompts.MustGet("parsing.json", "repair-resume-json"), map[string]string{
		"Error":    cause.Error(),
		"Response": response,
	})

	repaired, err := p.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "failed to repair resume JSON", Cause: err}
	}
	return decodeResume(repaired)
}

func decodeResume(response string) (*types.ParsedResume, error) {
	var resume types.ParsedResume
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &resume); err != nil {
		return nil, &ParseError{Message: "failed to parse resume JSON", Cause: err}
	}
	return &resume, nil
}

// postProcessResume canonicalises skills and marks roles whose end date is a "present" sentinel as current.
func postProcessResume(r *types.ParsedResume) {
	r.Skills = NormalizeSkills(r.Skills)
	for i := range r.Experience {
		exp := &r.Experience[i]
		switch strings.ToLower(strings.TrimSpace(exp.EndDate)) {
		case "present", "current", "now", "ongoing":
			exp.Current = true
			exp.EndDate = ""
		}
	}
}
