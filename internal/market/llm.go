package market

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/careerforward/career-quest/internal/llm"
	"github.com/careerforward/career-quest/internal/prompts"
	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
)

// LLMProvider asks a language model for a demand estimate. It is the last resort in a
// fallback chain, used when neither the table nor the API knows the industry.
type LLMProvider struct {
	client llm.Client
}

// NewLLMProvider creates an estimator backed by client.
func NewLLMProvider(client llm.Client) *LLMProvider {
	return &LLMProvider{client: client}
}

// Lookup implements scoring.MarketDataProvider.
func (p *LLMProvider) Lookup(ctx context.Context, q scoring.MarketQuery) (*types.MarketData, error) {
	skills := q.Skills
	if len(skills) > 20 {
		skills = skills[:20]
	}
	input := prompts.Format(prompts.MustGet("market.json", "estimate-demand"), map[string]string{
		"TargetRole": orUnknown(q.TargetRole),
		"Industry":   orUnknown(q.Industry),
		"Location":   orUnknown(q.Location),
		"Skills":     orUnknown(strings.Join(skills, ", ")),
	})
	prompt := llm.BuildExtractionPrompt(llm.MarketDemandSchema(), input)

	response, err := p.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}

	var dr demandResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &dr); err != nil {
		return nil, err
	}
	return dr.toMarketData()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
