package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
)

// HTTPProvider queries a labor-market API at GET {base}/v1/demand.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider creates an API client. A nil httpClient gets a 5s timeout client.
func NewHTTPProvider(baseURL, apiKey string, httpClient *http.Client) *HTTPProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

type demandResponse struct {
	DemandLevel   string   `json:"demand_level"`
	LocalScore    *float64 `json:"local_score"`
	RegionalScore *float64 `json:"regional_score"`
	RemoteScore   *float64 `json:"remote_score"`
}

// Lookup implements scoring.MarketDataProvider. A 404 means the API has no data for the query.
func (p *HTTPProvider) Lookup(ctx context.Context, q scoring.MarketQuery) (*types.MarketData, error) {
	params := url.Values{}
	params.Set("industry", q.Industry)
	params.Set("location", q.Location)
	params.Set("role", q.TargetRole)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/demand?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build market request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("market API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var dr demandResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&dr); err != nil {
		return nil, fmt.Errorf("failed to decode market response: %w", err)
	}
	return dr.toMarketData()
}

func (dr demandResponse) toMarketData() (*types.MarketData, error) {
	level := types.DemandLevel(strings.ToLower(strings.TrimSpace(dr.DemandLevel)))
	if !level.Valid() {
		return nil, fmt.Errorf("unknown demand level %q", dr.DemandLevel)
	}
	if dr.LocalScore == nil || dr.RegionalScore == nil || dr.RemoteScore == nil {
		return nil, fmt.Errorf("market response is missing scores")
	}
	return &types.MarketData{
		DemandLevel:   level,
		LocalScore:    clampScore(*dr.LocalScore),
		RegionalScore: clampScore(*dr.RegionalScore),
		RemoteScore:   clampScore(*dr.RemoteScore),
	}, nil
}
