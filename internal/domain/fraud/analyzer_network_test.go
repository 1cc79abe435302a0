package fraud

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeNetworkEmptyHistory(t *testing.T) {
	e := NewEngine(DefaultConfig())

	res := e.AnalyzeNetwork(completeProfile(), &UserHistory{})

	assert.True(t, res.Score.IsZero())
	assert.Empty(t, res.Indicators)
}

func TestAnalyzeNetworkMultipleLocations(t *testing.T) {
	e := NewEngine(DefaultConfig())
	sessions := make([]LoginSession, 6)
	for i := range sessions {
		sessions[i] = LoginSession{
			Location: &GeoPoint{Lat: float64(i) * 10, Lng: float64(i) * 5},
		}
	}

	res := e.AnalyzeNetwork(completeProfile(), &UserHistory{LoginSessions: sessions})

	require.Equal(t, []string{"Multiple locations: 6"}, res.Indicators)
	assert.True(t, res.Score.Equal(decimal.NewFromFloat(0.30)))
}

func TestAnalyzeNetworkMissingLocationsCoalesce(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// 8 sessions without coordinates all fall into the (0,0) bucket
	sessions := make([]LoginSession, 8)

	res := e.AnalyzeNetwork(completeProfile(), &UserHistory{LoginSessions: sessions})

	assert.Empty(t, res.Indicators)
}

func TestAnalyzeNetworkMultipleDevices(t *testing.T) {
	e := NewEngine(DefaultConfig())
	devices := make([]Device, 4)
	for i := range devices {
		devices[i] = Device{DeviceID: fmt.Sprintf("device-%d", i)}
	}

	res := e.AnalyzeNetwork(completeProfile(), &UserHistory{Devices: devices})

	require.Equal(t, []string{"Multiple devices: 4"}, res.Indicators)
	assert.True(t, res.Score.Equal(decimal.NewFromFloat(0.25)))
}

func TestAnalyzeNetworkVPNDetected(t *testing.T) {
	e := NewEngine(DefaultConfig())
	sessions := []LoginSession{
		{IPInfo: &IPMetadata{IsVPN: true}},
	}

	res := e.AnalyzeNetwork(completeProfile(), &UserHistory{LoginSessions: sessions})

	require.Equal(t, []string{"VPN/Proxy usage detected"}, res.Indicators)
	assert.True(t, res.Score.Equal(decimal.NewFromFloat(0.20)))
}

func TestAnalyzeNetworkProxyCountsAsVPN(t *testing.T) {
	e := NewEngine(DefaultConfig())
	sessions := []LoginSession{
		{IPInfo: &IPMetadata{IsProxy: true}},
	}

	res := e.AnalyzeNetwork(completeProfile(), &UserHistory{LoginSessions: sessions})

	assert.Contains(t, res.Indicators, "VPN/Proxy usage detected")
}

func TestAnalyzeNetworkVPNOutsideTrailingWindow(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// The flagged session is followed by 10 clean ones at the same
	// location, pushing it out of the trailing inspection window.
	sessions := []LoginSession{{IPInfo: &IPMetadata{IsVPN: true}}}
	for i := 0; i < 10; i++ {
		sessions = append(sessions, LoginSession{IPInfo: &IPMetadata{}})
	}

	res := e.AnalyzeNetwork(completeProfile(), &UserHistory{LoginSessions: sessions})

	assert.NotContains(t, res.Indicators, "VPN/Proxy usage detected")
}

func TestAnalyzeNetworkVPNFlaggedOnce(t *testing.T) {
	e := NewEngine(DefaultConfig())
	sessions := []LoginSession{
		{IPInfo: &IPMetadata{IsVPN: true}},
		{IPInfo: &IPMetadata{IsProxy: true}},
		{IPInfo: &IPMetadata{IsVPN: true, IsProxy: true}},
	}

	res := e.AnalyzeNetwork(completeProfile(), &UserHistory{LoginSessions: sessions})

	require.Equal(t, []string{"VPN/Proxy usage detected"}, res.Indicators)
	assert.True(t, res.Score.Equal(decimal.NewFromFloat(0.20)))
}
