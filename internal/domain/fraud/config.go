package fraud

import "github.com/shopspring/decimal"

// Score increments contributed by individual heuristics. All two-decimal
// constants so decimal arithmetic stays exact through weighting.
var (
	incEmailTemporal   = decimal.NewFromFloat(0.30)
	incNameLength      = decimal.NewFromFloat(0.20)
	incNameRepetitive  = decimal.NewFromFloat(0.25)
	incInvalidDate     = decimal.NewFromFloat(0.20)
	incSuspiciousAge   = decimal.NewFromFloat(0.30)
	incNoPhotos        = decimal.NewFromFloat(0.15)
	incIncomplete      = decimal.NewFromFloat(0.20)
	incExcessMessages  = decimal.NewFromFloat(0.40)
	incExcessLikes     = decimal.NewFromFloat(0.30)
	incMultipleReports = decimal.NewFromFloat(0.50)
	incDuplicateMsgs   = decimal.NewFromFloat(0.35)
	incManyLocations   = decimal.NewFromFloat(0.30)
	incManyDevices     = decimal.NewFromFloat(0.25)
	incVPNUsage        = decimal.NewFromFloat(0.20)
	incGenericBio      = decimal.NewFromFloat(0.20)
	incLinksInBio      = decimal.NewFromFloat(0.15)
	incBioLength       = decimal.NewFromFloat(0.10)
	incGenericTastes   = decimal.NewFromFloat(0.15)
	incSimilarPhotos   = decimal.NewFromFloat(0.30)
)

// Weights defines how much each analysis dimension contributes to the
// composite score. The four weights must sum to exactly 1.
type Weights struct {
	Profile  decimal.Decimal `json:"profile"`
	Behavior decimal.Decimal `json:"behavior"`
	Network  decimal.Decimal `json:"network"`
	Content  decimal.Decimal `json:"content"`
}

// DefaultWeights returns the standard dimension weights
func DefaultWeights() Weights {
	return Weights{
		Profile:  decimal.NewFromFloat(0.25),
		Behavior: decimal.NewFromFloat(0.35),
		Network:  decimal.NewFromFloat(0.20),
		Content:  decimal.NewFromFloat(0.20),
	}
}

// Thresholds holds the behavioral limits the analyzers compare against
type Thresholds struct {
	MaxMessagesPerHour    int             `json:"max_messages_per_hour"`
	MaxLikesPerHour       int             `json:"max_likes_per_hour"`
	MaxReports            int             `json:"max_reports"`
	MinProfileCompletion  decimal.Decimal `json:"min_profile_completion"`
	MaxLoginLocations     int             `json:"max_login_locations"`
	MaxDevices            int             `json:"max_devices"`
	DuplicateMessageRatio decimal.Decimal `json:"duplicate_message_ratio"`
	MinAge                int             `json:"min_age"`
	MaxAge                int             `json:"max_age"`
}

// DefaultThresholds returns the standard behavioral limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxMessagesPerHour:    50,
		MaxLikesPerHour:       100,
		MaxReports:            3,
		MinProfileCompletion:  decimal.NewFromFloat(0.30),
		MaxLoginLocations:     5,
		MaxDevices:            3,
		DuplicateMessageRatio: decimal.NewFromFloat(0.70),
		MinAge:                18,
		MaxAge:                80,
	}
}

// RiskThresholds maps the unrounded composite score onto risk levels,
// evaluated high to low with >= comparisons
type RiskThresholds struct {
	High   decimal.Decimal `json:"high"`
	Medium decimal.Decimal `json:"medium"`
	Low    decimal.Decimal `json:"low"`
}

// DefaultRiskThresholds returns the standard risk brackets
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{
		High:   decimal.NewFromFloat(0.80),
		Medium: decimal.NewFromFloat(0.60),
		Low:    decimal.NewFromFloat(0.30),
	}
}

// RecommendationCatalog holds the canned operator actions per risk bracket
type RecommendationCatalog struct {
	High    []string
	Medium  []string
	Low     []string
	Minimal []string
}

// DefaultRecommendations returns the standard action catalog
func DefaultRecommendations() RecommendationCatalog {
	return RecommendationCatalog{
		High: []string{
			"Suspend account temporarily",
			"Manually review all user data",
			"Verify identity with official documents",
			"Investigate connections with other reported users",
		},
		Medium: []string{
			"Monitor activity closely",
			"Temporarily limit interactions",
			"Verify profile information",
			"Apply messaging restrictions",
		},
		Low: []string{
			"Increase supervision",
			"Verify profile photos",
			"Monitor message frequency",
			"Verify location and devices",
		},
		Minimal: []string{
			"Continue normal monitoring",
			"Verify periodically",
			"Keep alerts active",
		},
	}
}

// Config is the immutable engine configuration injected at construction.
// Tests substitute alternate thresholds here without touching engine logic.
type Config struct {
	Weights          Weights
	Thresholds       Thresholds
	RiskThresholds   RiskThresholds
	Patterns         *Patterns
	Recommendations  RecommendationCatalog
	GenericInterests []string
}

// DefaultConfig returns the standard engine configuration
func DefaultConfig() Config {
	return Config{
		Weights:          DefaultWeights(),
		Thresholds:       DefaultThresholds(),
		RiskThresholds:   DefaultRiskThresholds(),
		Patterns:         DefaultPatterns(),
		Recommendations:  DefaultRecommendations(),
		GenericInterests: []string{"music", "movies", "travel", "food", "sports"},
	}
}
