package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/llm"
	"github.com/careerforward/career-quest/internal/market"
	"github.com/careerforward/career-quest/internal/scoring"
)

// newLLMClient returns nil when no Gemini key is configured.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, nil
	}
	llmCfg := llm.DefaultConfig()
	if cfg.Gemini.Temperature > 0 {
		llmCfg.Temperature = cfg.Gemini.Temperature
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newMarketCache prefers Redis and falls back to process memory when Redis is unset or unreachable.
func newMarketCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (market.Cache, func()) {
	if cfg.Redis.Addr == "" {
		return market.NewMemoryCache(), func() {}
	}
	rc := market.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := rc.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, caching market data in memory",
			zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = rc.Close()
		return market.NewMemoryCache(), func() {}
	}
	return rc, func() { _ = rc.Close() }
}

// newMarketProvider chains the labor-market API, the built-in table and, when enabled, the LLM estimate.
func newMarketProvider(ctx context.Context, cfg *config.Config, client llm.Client, logger *zap.Logger) (scoring.MarketDataProvider, func()) {
	cache, closeCache := newMarketCache(ctx, cfg, logger)
	ttl := cfg.Market.CacheTTL

	var providers []scoring.MarketDataProvider
	if cfg.Market.APIURL != "" {
		api := market.NewHTTPProvider(cfg.Market.APIURL, cfg.Market.APIKey, nil)
		providers = append(providers, market.NewCachedProvider(api, cache, ttl, logger).WithNamespace("api"))
	}
	providers = append(providers, market.NewStaticProvider())
	if cfg.Market.UseLLM && client != nil {
		providers = append(providers, market.NewCachedProvider(market.NewLLMProvider(client), cache, ttl, logger).WithNamespace("llm"))
	}

	logger.Debug("market providers configured", zap.Int("count", len(providers)))
	return market.Fallback(providers...), closeCache
}

// newEngine builds the scoring engine with the configured rubric.
func newEngine(cfg *config.Config, provider scoring.MarketDataProvider, logger *zap.Logger) *scoring.Engine {
	return scoring.NewEngine(scoring.Config{
		Rubric: cfg.Scoring,
		Market: provider,
		Logger: logger,
	})
}
