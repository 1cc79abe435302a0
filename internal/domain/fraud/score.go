package fraud

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Composite combines the four clamped dimension scores with the configured
// weights. Because each term is already in [0,1] and the weights sum to 1,
// the result is in [0,1] without further clamping.
func (e *Engine) Composite(profile, behavior, network, content decimal.Decimal) decimal.Decimal {
	w := e.cfg.Weights
	return profile.Mul(w.Profile).
		Add(behavior.Mul(w.Behavior)).
		Add(network.Mul(w.Network)).
		Add(content.Mul(w.Content))
}

// ClassifyRisk maps the unrounded composite score onto a risk level,
// checking brackets high to low; the first match wins
func (e *Engine) ClassifyRisk(score decimal.Decimal) RiskLevel {
	t := e.cfg.RiskThresholds
	switch {
	case score.GreaterThanOrEqual(t.High):
		return RiskLevelHigh
	case score.GreaterThanOrEqual(t.Medium):
		return RiskLevelMedium
	case score.GreaterThanOrEqual(t.Low):
		return RiskLevelLow
	default:
		return RiskLevelMinimal
	}
}

// Recommendations selects the canned action list for the score's risk
// bracket and appends indicator-specific actions. The final list is
// de-duplicated by value while preserving first-seen order.
func (e *Engine) Recommendations(indicators []string, score decimal.Decimal) []string {
	catalog := e.cfg.Recommendations
	var actions []string
	switch e.ClassifyRisk(score) {
	case RiskLevelHigh:
		actions = append(actions, catalog.High...)
	case RiskLevelMedium:
		actions = append(actions, catalog.Medium...)
	case RiskLevelLow:
		actions = append(actions, catalog.Low...)
	default:
		actions = append(actions, catalog.Minimal...)
	}

	if anyIndicatorContains(indicators, "Temporary email") {
		actions = append(actions, "Require permanent email verification")
	}
	if anyIndicatorContains(indicators, "Multiple reports") {
		actions = append(actions, "Investigate prior reports")
	}
	if anyIndicatorContains(indicators, "VPN/Proxy") {
		actions = append(actions, "Require VPN disabled for verification")
	}

	return dedupeOrdered(actions)
}

func anyIndicatorContains(indicators []string, substr string) bool {
	for _, ind := range indicators {
		if strings.Contains(ind, substr) {
			return true
		}
	}
	return false
}

// dedupeOrdered removes duplicate values while preserving first-seen order.
// Map iteration order is not stable, so a slice plus seen-set is used.
func dedupeOrdered(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Confidence estimates how much reliable input data backed the assessment,
// independent of the fraud score itself. It averages three availability
// ratios, each capped at 1: profile fields out of 4, behavior collections
// out of 4, network collections out of 2.
func (e *Engine) Confidence(profile *UserProfile, history *UserHistory) decimal.Decimal {
	profileFields := 0
	if profile.Email != "" {
		profileFields++
	}
	if len(profile.Photos) > 0 {
		profileFields++
	}
	if profile.Bio != "" {
		profileFields++
	}
	if profile.BirthDate != "" {
		profileFields++
	}

	behaviorFields := 0
	if len(history.Messages) > 0 {
		behaviorFields++
	}
	if len(history.Likes) > 0 {
		behaviorFields++
	}
	if len(history.LoginSessions) > 0 {
		behaviorFields++
	}
	// nil means the reports sub-fetch failed; an empty non-nil slice is a
	// known zero-report history and still counts as available data
	if history.ReportsReceived != nil {
		behaviorFields++
	}

	networkFields := 0
	if len(history.Devices) > 0 {
		networkFields++
	}
	if len(history.Connections) > 0 {
		networkFields++
	}

	sum := availabilityRatio(profileFields, 4).
		Add(availabilityRatio(behaviorFields, 4)).
		Add(availabilityRatio(networkFields, 2))

	return sum.Div(decimal.NewFromInt(3))
}

func availabilityRatio(present, total int) decimal.Decimal {
	ratio := decimal.NewFromInt(int64(present)).Div(decimal.NewFromInt(int64(total)))
	if ratio.GreaterThan(scoreCeiling) {
		return scoreCeiling
	}
	return ratio
}
