package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fraud-scoring-engine/internal/domain/fraud"
)

// AssessmentCache caches assessments in front of the assessment store
type AssessmentCache struct {
	client *Client
	ttl    time.Duration
}

// NewAssessmentCache creates an assessment cache with the given TTL
func NewAssessmentCache(client *Client, ttl time.Duration) *AssessmentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AssessmentCache{client: client, ttl: ttl}
}

func assessmentKey(userID string) string {
	return fmt.Sprintf("fraud:assessment:%s", userID)
}

// Get returns the cached assessment, or (nil, nil) on a miss
func (c *AssessmentCache) Get(ctx context.Context, userID string) (*fraud.FraudAssessment, error) {
	raw, err := c.client.Get(ctx, assessmentKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var assessment fraud.FraudAssessment
	if err := json.Unmarshal([]byte(raw), &assessment); err != nil {
		// Treat a corrupt entry as a miss and drop it
		_ = c.client.Del(ctx, assessmentKey(userID))
		return nil, nil
	}
	return &assessment, nil
}

// Put stores an assessment for the configured TTL
func (c *AssessmentCache) Put(ctx context.Context, assessment *fraud.FraudAssessment) error {
	raw, err := json.Marshal(assessment)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, assessmentKey(assessment.UserID), raw, c.ttl)
}

// Invalidate removes a cached assessment
func (c *AssessmentCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, assessmentKey(userID))
}
