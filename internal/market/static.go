package market

import (
	"context"
	"strings"

	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
)

// industryDemand is a coarse national baseline per industry.
type industryDemand struct {
	level    types.DemandLevel
	regional float64
	remote   float64
}

var defaultIndustries = map[string]industryDemand{
	"software":      {types.DemandHigh, 82, 78},
	"technology":    {types.DemandHigh, 80, 74},
	"healthcare":    {types.DemandHigh, 88, 22},
	"nursing":       {types.DemandHigh, 90, 10},
	"finance":       {types.DemandMedium, 70, 48},
	"accounting":    {types.DemandMedium, 66, 44},
	"education":     {types.DemandMedium, 64, 18},
	"manufacturing": {types.DemandMedium, 62, 6},
	"logistics":     {types.DemandMedium, 68, 12},
	"construction":  {types.DemandMedium, 66, 4},
	"marketing":     {types.DemandMedium, 58, 52},
	"retail":        {types.DemandLow, 52, 8},
	"hospitality":   {types.DemandLow, 50, 4},
	"media":         {types.DemandLow, 42, 40},
}

// metroBoost raises local demand in large labor markets.
var metroBoost = []struct {
	metro string
	boost float64
}{
	{"new york", 12}, {"san francisco", 12}, {"seattle", 10}, {"austin", 9}, {"boston", 9},
	{"chicago", 8}, {"los angeles", 8}, {"denver", 7}, {"atlanta", 7}, {"dallas", 7}, {"washington", 7},
}

// StaticProvider answers from a built-in industry table. Unknown industries yield no data.
type StaticProvider struct {
	industries map[string]industryDemand
}

// NewStaticProvider creates a provider with the default industry table.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{industries: defaultIndustries}
}

// Lookup implements scoring.MarketDataProvider.
func (p *StaticProvider) Lookup(_ context.Context, q scoring.MarketQuery) (*types.MarketData, error) {
	demand, ok := p.industries[strings.ToLower(strings.TrimSpace(q.Industry))]
	if !ok {
		return nil, nil
	}

	local := demand.regional - 10
	if q.Location == "" {
		local = demand.regional
	}
	loc := strings.ToLower(q.Location)
	for _, m := range metroBoost {
		if strings.Contains(loc, m.metro) {
			local = demand.regional + m.boost
			break
		}
	}
	if strings.Contains(loc, "remote") {
		local = demand.remote
	}

	return &types.MarketData{
		DemandLevel:   demand.level,
		LocalScore:    clampScore(local),
		RegionalScore: demand.regional,
		RemoteScore:   demand.remote,
	}, nil
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
