package config

import (
	"errors"
	"math"
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	for _, t := range []float64{c.Fraud.HighThreshold, c.Fraud.MediumThreshold, c.Fraud.LowThreshold} {
		if t < 0 || t > 1 {
			return errors.New("risk thresholds must be between 0 and 1")
		}
	}

	// Brackets must be ordered: low < medium < high
	if c.Fraud.LowThreshold >= c.Fraud.MediumThreshold {
		return errors.New("low_threshold should be less than medium_threshold")
	}
	if c.Fraud.MediumThreshold >= c.Fraud.HighThreshold {
		return errors.New("medium_threshold should be less than high_threshold")
	}

	weightSum := c.Fraud.ProfileWeight + c.Fraud.BehaviorWeight +
		c.Fraud.NetworkWeight + c.Fraud.ContentWeight
	if math.Abs(weightSum-1.0) > 1e-9 {
		return errors.New("dimension weights must sum to 1")
	}

	if c.Fraud.MaxMessagesPerHour <= 0 || c.Fraud.MaxLikesPerHour <= 0 || c.Fraud.MaxReports <= 0 {
		return errors.New("behavior limits must be positive")
	}

	return nil
}
