// Package market provides labor-market demand data for the scoring engine: a built-in
// industry table, an HTTP labor-market API client, an LLM estimator, and a Redis-backed cache.
package market

import (
	"context"
	"errors"

	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
)

var (
	_ scoring.MarketDataProvider = (*StaticProvider)(nil)
	_ scoring.MarketDataProvider = (*HTTPProvider)(nil)
	_ scoring.MarketDataProvider = (*LLMProvider)(nil)
	_ scoring.MarketDataProvider = (*CachedProvider)(nil)
	_ scoring.MarketDataProvider = FallbackProvider(nil)
)

// FallbackProvider queries providers in order and returns the first non-nil result.
// Errors are collected and returned only when no provider produced data.
type FallbackProvider []scoring.MarketDataProvider

// Fallback chains providers, skipping nil entries.
func Fallback(providers ...scoring.MarketDataProvider) FallbackProvider {
	chain := make(FallbackProvider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			chain = append(chain, p)
		}
	}
	return chain
}

// Lookup implements scoring.MarketDataProvider.
func (f FallbackProvider) Lookup(ctx context.Context, q scoring.MarketQuery) (*types.MarketData, error) {
	var errs []error
	for _, p := range f {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		md, err := p.Lookup(ctx, q)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if md != nil {
			return md, nil
		}
	}
	return nil, errors.Join(errs...)
}
