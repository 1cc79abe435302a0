package fraud

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// DimensionResult is the outcome of one analysis dimension: a score clamped
// to [0,1] and the indicators of the heuristics that fired.
type DimensionResult struct {
	Score      decimal.Decimal
	Indicators []string
}

// AnalyzeProfile scores the static account metadata. Heuristics accumulate
// additively and the sum is clamped to 1. Absent optional fields contribute
// nothing; a present but malformed birth date scores a parse penalty instead
// of raising.
func (e *Engine) AnalyzeProfile(profile *UserProfile, now time.Time) DimensionResult {
	score := decimal.Zero
	var indicators []string

	if e.cfg.Patterns.EmailTemporal(profile.Email) {
		score = score.Add(incEmailTemporal)
		indicators = append(indicators, "Temporary email detected")
	}

	name := profile.DisplayName
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		score = score.Add(incNameLength)
		indicators = append(indicators, "Abnormal name length")
	}
	if e.cfg.Patterns.NameRepetitive(name) {
		score = score.Add(incNameRepetitive)
		indicators = append(indicators, "Repetitive name pattern")
	}

	if profile.BirthDate != "" {
		if year, ok := parseBirthYear(profile.BirthDate); !ok {
			score = score.Add(incInvalidDate)
			indicators = append(indicators, "Invalid date format")
		} else {
			age := now.Year() - year
			if age < e.cfg.Thresholds.MinAge || age > e.cfg.Thresholds.MaxAge {
				score = score.Add(incSuspiciousAge)
				indicators = append(indicators, fmt.Sprintf("Suspicious age: %d years", age))
			}
		}
	}

	if len(profile.Photos) == 0 {
		score = score.Add(incNoPhotos)
		indicators = append(indicators, "No profile photos")
	}

	if completionRatio(profile).LessThan(e.cfg.Thresholds.MinProfileCompletion) {
		score = score.Add(incIncomplete)
		indicators = append(indicators, "Incomplete profile")
	}

	return DimensionResult{Score: clampScore(score), Indicators: indicators}
}

// parseBirthYear extracts the leading year segment of a year-first date
// string. A non-numeric segment is a parse failure, not an error.
func parseBirthYear(birthDate string) (int, bool) {
	head, _, _ := strings.Cut(birthDate, "-")
	year, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return year, true
}

// completionRatio measures how many of the five completeness fields are
// populated, using explicit per-type presence checks
func completionRatio(profile *UserProfile) decimal.Decimal {
	completed := 0
	if profile.Bio != "" {
		completed++
	}
	if profile.Location != "" {
		completed++
	}
	if len(profile.Interests) > 0 {
		completed++
	}
	if profile.Occupation != "" {
		completed++
	}
	if profile.Education != "" {
		completed++
	}
	return decimal.NewFromInt(int64(completed)).Div(decimal.NewFromInt(5))
}

var scoreCeiling = decimal.NewFromInt(1)

func clampScore(score decimal.Decimal) decimal.Decimal {
	if score.GreaterThan(scoreCeiling) {
		return scoreCeiling
	}
	if score.IsNegative() {
		return decimal.Zero
	}
	return score
}
