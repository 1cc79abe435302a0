package fraud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates one assessment: profile read, concurrent history
// fan-out, pure scoring, and the decoupled merge write of the result.
type Service struct {
	engine      *Engine
	profiles    ProfileRepository
	history     HistoryRepository
	assessments AssessmentRepository
	log         *zap.Logger

	// now is injectable so assessments are reproducible in tests
	now func() time.Time
}

// NewService creates a fraud scoring service
func NewService(
	engine *Engine,
	profiles ProfileRepository,
	history HistoryRepository,
	assessments AssessmentRepository,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		engine:      engine,
		profiles:    profiles,
		history:     history,
		assessments: assessments,
		log:         log,
		now:         time.Now,
	}
}

// AnalyzeUser scores one account and persists the assessment.
//
// A missing profile surfaces as ErrProfileNotFound and a failed profile read
// as ErrDependencyUnavailable; both are fatal. History sub-fetch failures
// are absorbed: the affected collection degrades to empty and the confidence
// estimate drops. A persistence failure is returned as
// ErrDependencyUnavailable together with the computed assessment, since the
// scoring path and the write path are decoupled.
func (s *Service) AnalyzeUser(ctx context.Context, userID string) (*FraudAssessment, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: loading profile %s: %v", ErrDependencyUnavailable, userID, err)
	}

	history := s.fetchHistory(ctx, userID)

	assessment := s.engine.Assess(profile, history, s.now())

	s.log.Info("fraud analysis completed",
		zap.String("user_id", userID),
		zap.String("fraud_score", assessment.FraudScore.String()),
		zap.String("risk_level", string(assessment.RiskLevel)),
		zap.Int("indicator_count", len(assessment.Indicators)),
	)

	if err := s.assessments.Upsert(ctx, assessment); err != nil {
		return assessment, fmt.Errorf("%w: persisting assessment for %s: %v", ErrDependencyUnavailable, userID, err)
	}

	return assessment, nil
}

// GetAssessment returns the stored assessment for a user
func (s *Service) GetAssessment(ctx context.Context, userID string) (*FraudAssessment, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.assessments.GetByUserID(ctx, userID)
}

// fetchHistory fans the six independent sub-queries out concurrently. Each
// branch recovers locally: on failure the collection degrades to empty (nil
// for reports, keeping it "unknown" for the confidence estimator) and the
// remaining branches are unaffected, so the group error is always nil.
func (s *Service) fetchHistory(ctx context.Context, userID string) *UserHistory {
	history := &UserHistory{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		messages, err := s.history.MessagesBySender(gctx, userID)
		if err != nil {
			s.degraded(userID, "messages", err)
			return nil
		}
		history.Messages = messages
		return nil
	})

	g.Go(func() error {
		likes, err := s.history.LikesByUser(gctx, userID)
		if err != nil {
			s.degraded(userID, "likes", err)
			return nil
		}
		history.Likes = likes
		return nil
	})

	g.Go(func() error {
		reports, err := s.history.ReportsByReportedUser(gctx, userID)
		if err != nil {
			s.degraded(userID, "reports", err)
			return nil
		}
		if reports == nil {
			reports = []Report{}
		}
		history.ReportsReceived = reports
		return nil
	})

	g.Go(func() error {
		sessions, err := s.history.SessionsByUser(gctx, userID)
		if err != nil {
			s.degraded(userID, "sessions", err)
			return nil
		}
		history.LoginSessions = sessions
		return nil
	})

	g.Go(func() error {
		devices, err := s.history.DevicesByUser(gctx, userID)
		if err != nil {
			s.degraded(userID, "devices", err)
			return nil
		}
		history.Devices = devices
		return nil
	})

	g.Go(func() error {
		connections, err := s.history.ConnectionsByUser(gctx, userID)
		if err != nil {
			s.degraded(userID, "connections", err)
			return nil
		}
		history.Connections = connections
		return nil
	})

	// Branches never return errors, so Wait only synchronizes
	_ = g.Wait()

	return history
}

func (s *Service) degraded(userID, collection string, err error) {
	s.log.Warn("history sub-fetch failed, proceeding with empty collection",
		zap.String("user_id", userID),
		zap.String("collection", collection),
		zap.Error(err),
	)
}
