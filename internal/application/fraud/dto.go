package fraud

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fraud-scoring-engine/internal/domain/fraud"
)

// AnalyzeUserRequest is the API request for a single analysis
type AnalyzeUserRequest struct {
	UserID string `json:"userId"`
}

// AssessmentResponse is the API shape of one assessment
type AssessmentResponse struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"userId"`

	FraudScore   decimal.Decimal `json:"fraudScore"`
	ScorePercent int64           `json:"scorePercent"`
	RiskLevel    fraud.RiskLevel `json:"riskLevel"`

	Indicators      []string `json:"indicators"`
	Recommendations []string `json:"recommendations"`

	Confidence  decimal.Decimal `json:"confidence"`
	NeedsReview bool            `json:"needsReview"`

	AnalyzedAt time.Time            `json:"analyzedAt"`
	Details    fraud.ScoreBreakdown `json:"details"`
}

// BatchAnalyzeInput lists the accounts to analyze in one request
type BatchAnalyzeInput struct {
	UserIDs []string `json:"userIds"`
}

// BatchResult is one slot of a batch response; exactly one of Assessment
// and Error is set
type BatchResult struct {
	UserID     string              `json:"userId"`
	Assessment *AssessmentResponse `json:"assessment,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// BatchSummary aggregates a batch run
type BatchSummary struct {
	Total      int `json:"total"`
	HighRisk   int `json:"highRisk"`
	MediumRisk int `json:"mediumRisk"`
	Failed     int `json:"failed"`
}

// BatchAnalyzeOutput is the batch API response
type BatchAnalyzeOutput struct {
	Results []BatchResult `json:"results"`
	Summary BatchSummary  `json:"summary"`
}

func toAssessmentResponse(a *fraud.FraudAssessment) *AssessmentResponse {
	return &AssessmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		FraudScore:      a.FraudScore,
		ScorePercent:    a.ScorePercent,
		RiskLevel:       a.RiskLevel,
		Indicators:      a.Indicators,
		Recommendations: a.Recommendations,
		Confidence:      a.Confidence,
		NeedsReview:     a.NeedsReview,
		AnalyzedAt:      a.AnalyzedAt,
		Details:         a.Details,
	}
}
