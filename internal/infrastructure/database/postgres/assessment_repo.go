package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fraud-scoring-engine/internal/domain/fraud"
)

// AssessmentModel is the database model for fraud assessments, one row per
// user. The review columns belong to the moderation workflow, not the
// engine; Upsert must leave them untouched.
type AssessmentModel struct {
	UserID          string          `gorm:"type:varchar(64);primaryKey"`
	AssessmentID    uuid.UUID       `gorm:"type:uuid;not null"`
	FraudScore      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ScorePercent    int64           `gorm:"not null"`
	RiskLevel       string          `gorm:"type:varchar(20);index;not null"`
	Indicators      string          `gorm:"type:jsonb"`
	Recommendations string          `gorm:"type:jsonb"`
	Confidence      decimal.Decimal `gorm:"type:decimal(5,2)"`
	NeedsReview     bool            `gorm:"index;not null"`
	Details         string          `gorm:"type:jsonb"`
	AnalyzedAt      time.Time       `gorm:"not null"`

	// Moderation-owned columns
	ReviewedBy  string     `gorm:"type:varchar(64)"`
	ReviewNotes string     `gorm:"type:text"`
	ReviewedAt  *time.Time
}

// TableName returns the table name for assessments
func (AssessmentModel) TableName() string {
	return "fraud_assessments"
}

// engineColumns are the columns an upsert may overwrite
var engineColumns = []string{
	"assessment_id",
	"fraud_score",
	"score_percent",
	"risk_level",
	"indicators",
	"recommendations",
	"confidence",
	"needs_review",
	"details",
	"analyzed_at",
}

// AssessmentRepository implements fraud.AssessmentRepository
type AssessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(client *Client) *AssessmentRepository {
	return &AssessmentRepository{db: client.DB()}
}

// Upsert merges the assessment into the user's row. Only engine-owned
// columns are assigned on conflict, so moderation state survives re-analysis.
func (r *AssessmentRepository) Upsert(ctx context.Context, assessment *fraud.FraudAssessment) error {
	indicators, _ := json.Marshal(assessment.Indicators)
	recommendations, _ := json.Marshal(assessment.Recommendations)
	details, _ := json.Marshal(assessment.Details)

	model := &AssessmentModel{
		UserID:          assessment.UserID,
		AssessmentID:    assessment.ID,
		FraudScore:      assessment.FraudScore,
		ScorePercent:    assessment.ScorePercent,
		RiskLevel:       string(assessment.RiskLevel),
		Indicators:      string(indicators),
		Recommendations: string(recommendations),
		Confidence:      assessment.Confidence,
		NeedsReview:     assessment.NeedsReview,
		Details:         string(details),
		AnalyzedAt:      assessment.AnalyzedAt,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(engineColumns),
		}).
		Create(model).Error
}

// GetByUserID retrieves the stored assessment for a user
func (r *AssessmentRepository) GetByUserID(ctx context.Context, userID string) (*fraud.FraudAssessment, error) {
	var model AssessmentModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fraud.ErrAssessmentNotFound
		}
		return nil, err
	}
	return modelToAssessment(&model), nil
}

func modelToAssessment(m *AssessmentModel) *fraud.FraudAssessment {
	var indicators []string
	var recommendations []string
	var details fraud.ScoreBreakdown
	json.Unmarshal([]byte(m.Indicators), &indicators)
	json.Unmarshal([]byte(m.Recommendations), &recommendations)
	json.Unmarshal([]byte(m.Details), &details)

	return &fraud.FraudAssessment{
		ID:              m.AssessmentID,
		UserID:          m.UserID,
		FraudScore:      m.FraudScore,
		ScorePercent:    m.ScorePercent,
		RiskLevel:       fraud.RiskLevel(m.RiskLevel),
		Indicators:      indicators,
		Recommendations: recommendations,
		Confidence:      m.Confidence,
		NeedsReview:     m.NeedsReview,
		AnalyzedAt:      m.AnalyzedAt,
		Details:         details,
	}
}
