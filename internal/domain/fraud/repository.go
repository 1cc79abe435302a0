package fraud

import "context"

// ProfileRepository reads account profiles from the profile store
type ProfileRepository interface {
	// GetByID returns ErrProfileNotFound when no profile exists
	GetByID(ctx context.Context, userID string) (*UserProfile, error)
}

// HistoryRepository reads the interaction history sub-collections. The
// queries are independent; callers may fan them out concurrently.
type HistoryRepository interface {
	MessagesBySender(ctx context.Context, userID string) ([]Message, error)
	LikesByUser(ctx context.Context, userID string) ([]Like, error)
	ReportsByReportedUser(ctx context.Context, userID string) ([]Report, error)
	SessionsByUser(ctx context.Context, userID string) ([]LoginSession, error)
	DevicesByUser(ctx context.Context, userID string) ([]Device, error)
	ConnectionsByUser(ctx context.Context, userID string) ([]Connection, error)
}

// AssessmentRepository persists and reads back assessment results
type AssessmentRepository interface {
	// Upsert is a merge write keyed by user id: it must not clobber
	// fields on the stored record that the engine does not own.
	Upsert(ctx context.Context, assessment *FraudAssessment) error

	// GetByUserID returns ErrAssessmentNotFound when the user was never
	// analyzed
	GetByUserID(ctx context.Context, userID string) (*FraudAssessment, error)
}
