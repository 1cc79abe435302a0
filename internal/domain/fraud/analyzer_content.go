package fraud

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// linkMarkers are the URL-like substrings that flag promotional bios
var linkMarkers = []string{"http", "www", ".com", ".net"}

// AnalyzeContent scores bio, interest and photo content quality. Bio
// heuristics only run on a non-empty bio; an absent bio is scored through
// the profile completeness rule instead.
func (e *Engine) AnalyzeContent(profile *UserProfile) DimensionResult {
	score := decimal.Zero
	var indicators []string

	if profile.Bio != "" {
		if e.cfg.Patterns.BioGeneric(profile.Bio) {
			score = score.Add(incGenericBio)
			indicators = append(indicators, "Generic bio")
		}

		lowerBio := strings.ToLower(profile.Bio)
		for _, marker := range linkMarkers {
			if strings.Contains(lowerBio, marker) {
				score = score.Add(incLinksInBio)
				indicators = append(indicators, "Links in bio")
				break
			}
		}

		if n := utf8.RuneCountInString(profile.Bio); n < 10 || n > 500 {
			score = score.Add(incBioLength)
			indicators = append(indicators, "Abnormal bio length")
		}
	}

	if len(profile.Interests) > 0 && e.allInterestsGeneric(profile.Interests) {
		score = score.Add(incGenericTastes)
		indicators = append(indicators, "Overly generic interests")
	}

	if hashes := photoHashes(profile.Photos); len(hashes) > 0 {
		distinct := make(map[string]struct{}, len(hashes))
		for _, h := range hashes {
			distinct[h] = struct{}{}
		}
		if float64(len(distinct)) < float64(len(hashes))*0.5 {
			score = score.Add(incSimilarPhotos)
			indicators = append(indicators, "Highly similar photos")
		}
	}

	return DimensionResult{Score: clampScore(score), Indicators: indicators}
}

func (e *Engine) allInterestsGeneric(interests []string) bool {
	for _, interest := range interests {
		lower := strings.ToLower(interest)
		generic := false
		for _, g := range e.cfg.GenericInterests {
			if strings.Contains(lower, g) {
				generic = true
				break
			}
		}
		if !generic {
			return false
		}
	}
	return true
}

func photoHashes(photos []Photo) []string {
	var hashes []string
	for _, photo := range photos {
		if photo.Hash != "" {
			hashes = append(hashes, photo.Hash)
		}
	}
	return hashes
}
