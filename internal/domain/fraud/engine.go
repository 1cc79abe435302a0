package fraud

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var decimal100 = decimal.NewFromInt(100)

// Engine performs the multi-dimensional fraud analysis. It is pure: given
// the same profile, history snapshot and assessment instant it produces the
// same scores, so it is safe to share across concurrent assessments.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given immutable configuration
func NewEngine(cfg Config) *Engine {
	if cfg.Patterns == nil {
		cfg.Patterns = DefaultPatterns()
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Assess runs the four analyzers over one profile and history snapshot and
// assembles the full assessment. The caller supplies the assessment instant
// so the trailing-hour window is stable for a given invocation.
func (e *Engine) Assess(profile *UserProfile, history *UserHistory, now time.Time) *FraudAssessment {
	if history == nil {
		history = &UserHistory{}
	}

	profileRes := e.AnalyzeProfile(profile, now)
	behaviorRes := e.AnalyzeBehavior(history, now)
	networkRes := e.AnalyzeNetwork(profile, history)
	contentRes := e.AnalyzeContent(profile)

	indicators := make([]string, 0,
		len(profileRes.Indicators)+len(behaviorRes.Indicators)+len(networkRes.Indicators)+len(contentRes.Indicators))
	indicators = append(indicators, profileRes.Indicators...)
	indicators = append(indicators, behaviorRes.Indicators...)
	indicators = append(indicators, networkRes.Indicators...)
	indicators = append(indicators, contentRes.Indicators...)

	composite := e.Composite(profileRes.Score, behaviorRes.Score, networkRes.Score, contentRes.Score)
	level := e.ClassifyRisk(composite)

	return &FraudAssessment{
		ID:              uuid.New(),
		UserID:          profile.ID,
		FraudScore:      composite.Round(2),
		ScorePercent:    composite.Mul(decimal100).Round(0).IntPart(),
		RiskLevel:       level,
		Indicators:      indicators,
		Recommendations: e.Recommendations(indicators, composite),
		Confidence:      e.Confidence(profile, history).Round(2),
		NeedsReview:     level == RiskLevelHigh,
		AnalyzedAt:      now,
		Details: ScoreBreakdown{
			ProfileScore:  profileRes.Score.Round(2),
			BehaviorScore: behaviorRes.Score.Round(2),
			NetworkScore:  networkRes.Score.Round(2),
			ContentScore:  contentRes.Score.Round(2),
		},
	}
}
