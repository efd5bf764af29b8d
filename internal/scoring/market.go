package scoring

import (
	"math"
	"strings"

	"github.com/careerforward/career-quest/internal/types"
)

const (
	marketDepthWeight    = 0.35
	marketOverlapWeight  = 0.35
	marketDemandWeight   = 0.3
	localDepthWeight     = 0.5
	localOverlapWeight   = 0.5
	demandLevelComponent = 0.5
	demandScoreComponent = 0.5
)

var demandLevelWeights = map[types.DemandLevel]float64{
	types.DemandHigh:   1.0,
	types.DemandMedium: 0.7,
	types.DemandLow:    0.4,
}

// demandFraction folds a market snapshot into [0,1].
func demandFraction(md *types.MarketData) float64 {
	best := math.Max(md.LocalScore, math.Max(md.RegionalScore, md.RemoteScore))
	return demandLevelComponent*demandLevelWeights[md.DemandLevel] + demandScoreComponent*clamp(best, 0, 100)/100
}

func evaluateMarket(r *types.ParsedResume, targets []string, md *types.MarketData, rubric Rubric) evaluation {
	titles := make([]string, 0, len(r.Experience))
	for _, exp := range r.Experience {
		if exp.Title != "" {
			titles = append(titles, exp.Title)
		}
	}
	if len(r.Skills) == 0 && len(titles) == 0 {
		return newEvaluation(CategoryMarket, MaxMarket, 0, []string{"list your skills and job titles"})
	}

	var notes []string
	depth := math.Min(1, float64(len(r.Skills))/float64(rubric.SkillDepthTarget))
	if depth < 1 {
		notes = append(notes, "list more of the tools and skills you use")
	}

	overlap := depth
	if len(targets) > 0 {
		var missing []string
		overlap, missing = coverage(targets, tokenSet(append(titles, r.Skills...)...))
		if len(missing) > 0 {
			notes = append(notes, "add in-demand skills for your target: "+strings.Join(missing, ", "))
		}
	}

	if md == nil {
		return newEvaluation(CategoryMarket, MaxMarket, localDepthWeight*depth+localOverlapWeight*overlap, notes)
	}
	if md.DemandLevel == types.DemandLow {
		notes = append(notes, "demand is low for this target; consider adjacent roles or remote positions")
	}
	fraction := marketDepthWeight*depth + marketOverlapWeight*overlap + marketDemandWeight*demandFraction(md)
	return newEvaluation(CategoryMarket, MaxMarket, fraction, notes)
}
