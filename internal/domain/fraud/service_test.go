package fraud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetByID(ctx context.Context, userID string) (*UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserProfile), args.Error(1)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) MessagesBySender(ctx context.Context, userID string) ([]Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Message), args.Error(1)
}

func (m *mockHistoryRepo) LikesByUser(ctx context.Context, userID string) ([]Like, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Like), args.Error(1)
}

func (m *mockHistoryRepo) ReportsByReportedUser(ctx context.Context, userID string) ([]Report, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Report), args.Error(1)
}

func (m *mockHistoryRepo) SessionsByUser(ctx context.Context, userID string) ([]LoginSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LoginSession), args.Error(1)
}

func (m *mockHistoryRepo) DevicesByUser(ctx context.Context, userID string) ([]Device, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Device), args.Error(1)
}

func (m *mockHistoryRepo) ConnectionsByUser(ctx context.Context, userID string) ([]Connection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Connection), args.Error(1)
}

type mockAssessmentRepo struct {
	mock.Mock
}

func (m *mockAssessmentRepo) Upsert(ctx context.Context, assessment *FraudAssessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *mockAssessmentRepo) GetByUserID(ctx context.Context, userID string) (*FraudAssessment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FraudAssessment), args.Error(1)
}

func newTestService(profiles *mockProfileRepo, history *mockHistoryRepo, assessments *mockAssessmentRepo) *Service {
	svc := NewService(NewEngine(DefaultConfig()), profiles, history, assessments, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func stubEmptyHistory(history *mockHistoryRepo) {
	history.On("MessagesBySender", mock.Anything, mock.Anything).Return([]Message{}, nil)
	history.On("LikesByUser", mock.Anything, mock.Anything).Return([]Like{}, nil)
	history.On("ReportsByReportedUser", mock.Anything, mock.Anything).Return([]Report{}, nil)
	history.On("SessionsByUser", mock.Anything, mock.Anything).Return([]LoginSession{}, nil)
	history.On("DevicesByUser", mock.Anything, mock.Anything).Return([]Device{}, nil)
	history.On("ConnectionsByUser", mock.Anything, mock.Anything).Return([]Connection{}, nil)
}

func TestAnalyzeUserMissingID(t *testing.T) {
	svc := newTestService(new(mockProfileRepo), new(mockHistoryRepo), new(mockAssessmentRepo))

	got, err := svc.AnalyzeUser(context.Background(), "")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestAnalyzeUserProfileNotFound(t *testing.T) {
	profiles := new(mockProfileRepo)
	profiles.On("GetByID", mock.Anything, "ghost").Return(nil, ErrProfileNotFound)
	svc := newTestService(profiles, new(mockHistoryRepo), new(mockAssessmentRepo))

	got, err := svc.AnalyzeUser(context.Background(), "ghost")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	profiles.AssertExpectations(t)
}

func TestAnalyzeUserProfileFetchFailure(t *testing.T) {
	profiles := new(mockProfileRepo)
	profiles.On("GetByID", mock.Anything, "user-1").Return(nil, errors.New("connection reset"))
	svc := newTestService(profiles, new(mockHistoryRepo), new(mockAssessmentRepo))

	got, err := svc.AnalyzeUser(context.Background(), "user-1")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestAnalyzeUserSuccessPersists(t *testing.T) {
	profiles := new(mockProfileRepo)
	profiles.On("GetByID", mock.Anything, "user-1").Return(completeProfile(), nil)
	history := new(mockHistoryRepo)
	stubEmptyHistory(history)
	assessments := new(mockAssessmentRepo)
	assessments.On("Upsert", mock.Anything, mock.AnythingOfType("*fraud.FraudAssessment")).Return(nil)

	svc := newTestService(profiles, history, assessments)
	got, err := svc.AnalyzeUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, RiskLevelMinimal, got.RiskLevel)
	assert.Equal(t, testNow, got.AnalyzedAt)
	assessments.AssertExpectations(t)
}

func TestAnalyzeUserHistorySubFetchFailureDegrades(t *testing.T) {
	profiles := new(mockProfileRepo)
	profiles.On("GetByID", mock.Anything, "user-1").Return(completeProfile(), nil)

	history := new(mockHistoryRepo)
	history.On("MessagesBySender", mock.Anything, mock.Anything).Return([]Message{{Content: "hi", CreatedAt: NewTimestamp(testNow)}}, nil)
	history.On("LikesByUser", mock.Anything, mock.Anything).Return([]Like{}, nil)
	history.On("ReportsByReportedUser", mock.Anything, mock.Anything).Return(nil, errors.New("index unavailable"))
	history.On("SessionsByUser", mock.Anything, mock.Anything).Return([]LoginSession{}, nil)
	history.On("DevicesByUser", mock.Anything, mock.Anything).Return([]Device{}, nil)
	history.On("ConnectionsByUser", mock.Anything, mock.Anything).Return([]Connection{}, nil)

	assessments := new(mockAssessmentRepo)
	var persisted *FraudAssessment
	assessments.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*FraudAssessment)
	}).Return(nil)

	svc := newTestService(profiles, history, assessments)
	got, err := svc.AnalyzeUser(context.Background(), "user-1")

	// The failed reports fetch is absorbed; the assessment still completes
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotContains(t, got.Indicators, "Multiple reports: 0")
	assert.Same(t, got, persisted)

	// Unknown reports lower confidence versus a known-empty fetch
	withReports := NewEngine(DefaultConfig()).Confidence(completeProfile(), &UserHistory{
		Messages:        []Message{{Content: "hi"}},
		ReportsReceived: []Report{},
	})
	assert.True(t, got.Confidence.LessThan(withReports.Round(2)),
		"confidence %s not lowered (known-reports baseline %s)", got.Confidence, withReports)
}

func TestAnalyzeUserPersistenceFailureReturnsAssessment(t *testing.T) {
	profiles := new(mockProfileRepo)
	profiles.On("GetByID", mock.Anything, "user-1").Return(completeProfile(), nil)
	history := new(mockHistoryRepo)
	stubEmptyHistory(history)
	assessments := new(mockAssessmentRepo)
	assessments.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("write timeout"))

	svc := newTestService(profiles, history, assessments)
	got, err := svc.AnalyzeUser(context.Background(), "user-1")

	// Scoring succeeded, only persistence failed: both are surfaced
	require.NotNil(t, got)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	assert.Equal(t, "user-1", got.UserID)
}

func TestGetAssessment(t *testing.T) {
	assessments := new(mockAssessmentRepo)
	stored := &FraudAssessment{UserID: "user-1", RiskLevel: RiskLevelLow}
	assessments.On("GetByUserID", mock.Anything, "user-1").Return(stored, nil)
	assessments.On("GetByUserID", mock.Anything, "ghost").Return(nil, ErrAssessmentNotFound)

	svc := newTestService(new(mockProfileRepo), new(mockHistoryRepo), assessments)

	got, err := svc.GetAssessment(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	_, err = svc.GetAssessment(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAssessmentNotFound)

	_, err = svc.GetAssessment(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingUserID)
}
