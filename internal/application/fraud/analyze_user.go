package fraud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"fraud-scoring-engine/internal/domain/fraud"
)

// ErrBatchTooLarge is returned when a batch request exceeds the cap
var ErrBatchTooLarge = errors.New("batch exceeds maximum size")

// maxBatchSize caps one batch request; larger lists must be split by the
// caller
const maxBatchSize = 100

var (
	assessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fraud_assessments_total",
		Help: "Completed fraud assessments by resulting risk level",
	}, []string{"risk_level"})

	assessmentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fraud_assessment_failures_total",
		Help: "Failed fraud assessments by failure kind",
	}, []string{"reason"})

	assessmentCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraud_assessment_cache_hits_total",
		Help: "Assessment reads served from cache",
	})
)

// AssessmentCache is the read-through cache in front of the assessment
// store. Get returns (nil, nil) on a miss.
type AssessmentCache interface {
	Get(ctx context.Context, userID string) (*fraud.FraudAssessment, error)
	Put(ctx context.Context, assessment *fraud.FraudAssessment) error
}

// AnalyzeUserUseCase drives account fraud analysis end to end: scoring via
// the domain service, caching of results, and the API-facing shapes.
type AnalyzeUserUseCase struct {
	service *fraud.Service
	cache   AssessmentCache
	log     *zap.Logger

	analysisTimeout time.Duration
}

// NewAnalyzeUserUseCase creates the use case. The cache is optional; a nil
// cache disables caching without changing behavior.
func NewAnalyzeUserUseCase(
	service *fraud.Service,
	cache AssessmentCache,
	log *zap.Logger,
	analysisTimeout time.Duration,
) *AnalyzeUserUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	if analysisTimeout <= 0 {
		analysisTimeout = 10 * time.Second
	}
	return &AnalyzeUserUseCase{
		service:         service,
		cache:           cache,
		log:             log,
		analysisTimeout: analysisTimeout,
	}
}

// Execute analyzes one account and returns the fresh assessment.
//
// A persistence failure inside the service still yields an assessment; it is
// returned to the caller and the error is reported through logs and metrics
// rather than failing the request.
func (uc *AnalyzeUserUseCase) Execute(ctx context.Context, userID string) (*AssessmentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.analysisTimeout)
	defer cancel()

	assessment, err := uc.service.AnalyzeUser(ctx, userID)
	if err != nil {
		if assessment == nil {
			assessmentFailures.WithLabelValues(failureReason(err)).Inc()
			return nil, err
		}
		// Scoring succeeded, only the write failed
		assessmentFailures.WithLabelValues("persistence").Inc()
		uc.log.Error("assessment computed but not persisted",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	assessmentsTotal.WithLabelValues(string(assessment.RiskLevel)).Inc()
	uc.cachePut(ctx, assessment)

	return toAssessmentResponse(assessment), nil
}

// GetAssessment returns the stored assessment for a user, cache-aside
func (uc *AnalyzeUserUseCase) GetAssessment(ctx context.Context, userID string) (*AssessmentResponse, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, userID)
		if err != nil {
			uc.log.Warn("assessment cache read failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else if cached != nil {
			assessmentCacheHits.Inc()
			return toAssessmentResponse(cached), nil
		}
	}

	assessment, err := uc.service.GetAssessment(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.cachePut(ctx, assessment)
	return toAssessmentResponse(assessment), nil
}

// ExecuteBatch analyzes up to maxBatchSize accounts. Failures are isolated
// per user: one failing account is reported in its slot and the rest of the
// batch proceeds.
func (uc *AnalyzeUserUseCase) ExecuteBatch(ctx context.Context, input BatchAnalyzeInput) (*BatchAnalyzeOutput, error) {
	if len(input.UserIDs) > maxBatchSize {
		return nil, fmt.Errorf("%w: %d users, maximum is %d", ErrBatchTooLarge, len(input.UserIDs), maxBatchSize)
	}

	output := &BatchAnalyzeOutput{
		Results: make([]BatchResult, len(input.UserIDs)),
		Summary: BatchSummary{Total: len(input.UserIDs)},
	}

	for i, userID := range input.UserIDs {
		result := BatchResult{UserID: userID}

		resp, err := uc.Execute(ctx, userID)
		if err != nil {
			result.Error = err.Error()
			output.Summary.Failed++
			output.Results[i] = result
			continue
		}

		result.Assessment = resp
		switch resp.RiskLevel {
		case fraud.RiskLevelHigh:
			output.Summary.HighRisk++
		case fraud.RiskLevelMedium:
			output.Summary.MediumRisk++
		}
		output.Results[i] = result
	}

	return output, nil
}

func (uc *AnalyzeUserUseCase) cachePut(ctx context.Context, assessment *fraud.FraudAssessment) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Put(ctx, assessment); err != nil {
		uc.log.Warn("assessment cache write failed",
			zap.String("user_id", assessment.UserID),
			zap.Error(err),
		)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, fraud.ErrProfileNotFound):
		return "profile_not_found"
	case errors.Is(err, fraud.ErrMissingUserID):
		return "missing_user_id"
	case errors.Is(err, fraud.ErrDependencyUnavailable):
		return "dependency_unavailable"
	default:
		return "internal"
	}
}
