package scoring

import "time"

// Sub-score maxima. These are fixed product weights and are not configurable.
const (
	MaxFormatting = 10.5
	MaxSpelling   = 7.5
	MaxLength     = 6.0
	MaxRelevance  = 6.0

	MaxResumeQuality = MaxFormatting + MaxSpelling + MaxLength + MaxRelevance

	MaxEducation = 15.0
	MaxTenure    = 20.0
	MaxGaps      = 15.0
	MaxMarket    = 20.0

	MaxJobSeeker = MaxEducation + MaxTenure + MaxGaps + MaxMarket
)

// DegreeTiers maps credential levels to the fraction of the education maximum they earn.
type DegreeTiers struct {
	Doctorate    float64 `mapstructure:"doctorate" json:"doctorate"`
	Master       float64 `mapstructure:"master" json:"master"`
	Bachelor     float64 `mapstructure:"bachelor" json:"bachelor"`
	Associate    float64 `mapstructure:"associate" json:"associate"`
	Certificate  float64 `mapstructure:"certificate" json:"certificate"`
	HighSchool   float64 `mapstructure:"high_school" json:"high_school"`
	Unrecognized float64 `mapstructure:"unrecognized" json:"unrecognized"`
}

// Rubric holds the curve parameters of every evaluator.
// Zero fields are replaced with DefaultRubric values by Normalized.
type Rubric struct {
	IdealMinWords      int `mapstructure:"ideal_min_words" json:"ideal_min_words"`
	IdealMaxWords      int `mapstructure:"ideal_max_words" json:"ideal_max_words"`
	VerboseCutoffWords int `mapstructure:"verbose_cutoff_words" json:"verbose_cutoff_words"`

	// ErrorDensityCeiling is the number of errors per 100 words that scores zero.
	ErrorDensityCeiling float64 `mapstructure:"error_density_ceiling" json:"error_density_ceiling"`

	// Tenure and gaps read the same timeline. A role whose end date cannot be read ends where
	// the next role starts; its inferred length counts toward tenure but never as a short stint.
	TenureAvgTargetMonths     float64 `mapstructure:"tenure_avg_target_months" json:"tenure_avg_target_months"`
	TenureLongestTargetMonths float64 `mapstructure:"tenure_longest_target_months" json:"tenure_longest_target_months"`
	ShortStintMonths          float64 `mapstructure:"short_stint_months" json:"short_stint_months"`
	ShortStintPenalty         float64 `mapstructure:"short_stint_penalty" json:"short_stint_penalty"`
	ShortStintPenaltyCap      float64 `mapstructure:"short_stint_penalty_cap" json:"short_stint_penalty_cap"`

	GapGraceMonths float64 `mapstructure:"gap_grace_months" json:"gap_grace_months"`
	GapZeroMonths  float64 `mapstructure:"gap_zero_months" json:"gap_zero_months"`

	Degrees             DegreeTiers `mapstructure:"degrees" json:"degrees"`
	FieldAlignmentBonus float64     `mapstructure:"field_alignment_bonus" json:"field_alignment_bonus"`

	SkillDepthTarget int `mapstructure:"skill_depth_target" json:"skill_depth_target"`

	RecommendationThreshold float64 `mapstructure:"recommendation_threshold" json:"recommendation_threshold"`
	GainFraction            float64 `mapstructure:"gain_fraction" json:"gain_fraction"`

	MarketTimeout time.Duration `mapstructure:"market_timeout" json:"market_timeout"`
}

// DefaultRubric returns the production curve parameters.
func DefaultRubric() Rubric {
	return Rubric{
		IdealMinWords:      300,
		IdealMaxWords:      800,
		VerboseCutoffWords: 1600,

		ErrorDensityCeiling: 5,

		TenureAvgTargetMonths:     36,
		TenureLongestTargetMonths: 48,
		ShortStintMonths:          6,
		ShortStintPenalty:         0.1,
		ShortStintPenaltyCap:      0.5,

		GapGraceMonths: 2,
		GapZeroMonths:  24,

		Degrees: DegreeTiers{
			Doctorate:    1.0,
			Master:       0.85,
			Bachelor:     0.7,
			Associate:    0.5,
			Certificate:  0.35,
			HighSchool:   0.2,
			Unrecognized: 0.2,
		},
		FieldAlignmentBonus: 0.15,

		SkillDepthTarget: 10,

		RecommendationThreshold: 0.95,
		GainFraction:            0.8,

		MarketTimeout: 3 * time.Second,
	}
}

// Normalized fills zero-valued fields from DefaultRubric and repairs inverted word bands.
func (r Rubric) Normalized() Rubric {
	d := DefaultRubric()

	if r.IdealMinWords <= 0 {
		r.IdealMinWords = d.IdealMinWords
	}
	if r.IdealMaxWords <= 0 {
		r.IdealMaxWords = d.IdealMaxWords
	}
	if r.IdealMaxWords < r.IdealMinWords {
		r.IdealMaxWords = r.IdealMinWords
	}
	if r.VerboseCutoffWords <= r.IdealMaxWords {
		r.VerboseCutoffWords = r.IdealMaxWords * 2
	}
	if r.ErrorDensityCeiling <= 0 {
		r.ErrorDensityCeiling = d.ErrorDensityCeiling
	}
	if r.TenureAvgTargetMonths <= 0 {
		r.TenureAvgTargetMonths = d.TenureAvgTargetMonths
	}
	if r.TenureLongestTargetMonths <= 0 {
		r.TenureLongestTargetMonths = d.TenureLongestTargetMonths
	}
	if r.ShortStintMonths <= 0 {
		r.ShortStintMonths = d.ShortStintMonths
	}
	if r.ShortStintPenalty <= 0 {
		r.ShortStintPenalty = d.ShortStintPenalty
	}
	if r.ShortStintPenaltyCap <= 0 {
		r.ShortStintPenaltyCap = d.ShortStintPenaltyCap
	}
	if r.GapGraceMonths <= 0 {
		r.GapGraceMonths = d.GapGraceMonths
	}
	if r.GapZeroMonths <= 0 {
		r.GapZeroMonths = d.GapZeroMonths
	}
	if r.Degrees == (DegreeTiers{}) {
		r.Degrees = d.Degrees
	}
	if r.FieldAlignmentBonus <= 0 {
		r.FieldAlignmentBonus = d.FieldAlignmentBonus
	}
	if r.SkillDepthTarget <= 0 {
		r.SkillDepthTarget = d.SkillDepthTarget
	}
	if r.RecommendationThreshold <= 0 || r.RecommendationThreshold > 1 {
		r.RecommendationThreshold = d.RecommendationThreshold
	}
	if r.GainFraction <= 0 || r.GainFraction > 1 {
		r.GainFraction = d.GainFraction
	}
	if r.MarketTimeout <= 0 {
		r.MarketTimeout = d.MarketTimeout
	}
	return r
}
