package fraud

import "regexp"

// PatternVersion identifies the heuristic catalog revision in use
const PatternVersion = "1.0.0"

// Patterns is the fixed catalog of string heuristics shared by the analyzers.
// Every predicate is a deterministic, total function: empty input means "no
// match", never an error.
type Patterns struct {
	emailTemporal *regexp.Regexp
	bioGeneric    *regexp.Regexp
	locationVPN   *regexp.Regexp
}

// DefaultPatterns returns the built-in heuristic catalog
func DefaultPatterns() *Patterns {
	return &Patterns{
		emailTemporal: regexp.MustCompile(`(?i)(tempmail|10minutemail|mailinator|guerrillamail|throwaway|trashmail|fakeinbox|yopmail)\.(com|net|org|co\.uk)`),
		bioGeneric:    regexp.MustCompile(`(?i)(looking for|seeking|want to meet|nice person|good heart)`),
		locationVPN:   regexp.MustCompile(`(?i)VPN|Proxy|Tor|Anonymous`),
	}
}

// EmailTemporal reports whether the email belongs to a known
// disposable-mail provider
func (p *Patterns) EmailTemporal(email string) bool {
	return p.emailTemporal.MatchString(email)
}

// NameRepetitive reports whether any character repeats three or more times
// consecutively. This is a rune scan rather than a regexp: the upstream
// pattern was `(.)\1{2,}` and RE2 has no backreferences.
func (p *Patterns) NameRepetitive(name string) bool {
	var prev rune
	run := 0
	for _, r := range name {
		if run > 0 && r == prev {
			run++
			if run >= 3 {
				return true
			}
			continue
		}
		prev = r
		run = 1
	}
	return false
}

// BioGeneric reports whether the bio contains one of the stock
// filler phrases
func (p *Patterns) BioGeneric(bio string) bool {
	return p.bioGeneric.MatchString(bio)
}

// LocationVPN reports whether the text mentions VPN, proxy, Tor or
// anonymizer usage
func (p *Patterns) LocationVPN(text string) bool {
	return p.locationVPN.MatchString(text)
}
