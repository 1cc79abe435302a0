package fraud

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// vpnSessionWindow is how many trailing sessions are inspected for
// VPN/proxy flags
const vpnSessionWindow = 10

// AnalyzeNetwork scores device and location diversity plus VPN signals.
// Sessions without coordinates coalesce into the (0,0) bucket, so a pile of
// location-less sessions counts as a single location.
func (e *Engine) AnalyzeNetwork(profile *UserProfile, history *UserHistory) DimensionResult {
	score := decimal.Zero
	var indicators []string

	locations := make(map[string]struct{})
	for _, session := range history.LoginSessions {
		var lat, lng float64
		if session.Location != nil {
			lat, lng = session.Location.Lat, session.Location.Lng
		}
		locations[fmt.Sprintf("%g,%g", lat, lng)] = struct{}{}
	}
	if len(locations) > e.cfg.Thresholds.MaxLoginLocations {
		score = score.Add(incManyLocations)
		indicators = append(indicators, fmt.Sprintf("Multiple locations: %d", len(locations)))
	}

	if devices := len(history.Devices); devices > e.cfg.Thresholds.MaxDevices {
		score = score.Add(incManyDevices)
		indicators = append(indicators, fmt.Sprintf("Multiple devices: %d", devices))
	}

	recent := history.LoginSessions
	if len(recent) > vpnSessionWindow {
		recent = recent[len(recent)-vpnSessionWindow:]
	}
	for _, session := range recent {
		if session.IPInfo != nil && (session.IPInfo.IsVPN || session.IPInfo.IsProxy) {
			score = score.Add(incVPNUsage)
			indicators = append(indicators, "VPN/Proxy usage detected")
			break
		}
	}

	return DimensionResult{Score: clampScore(score), Indicators: indicators}
}
