package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"fraud-scoring-engine/internal/domain/fraud"
)

// UserProfileModel is the database model for user profiles
type UserProfileModel struct {
	ID          string    `gorm:"type:varchar(64);primaryKey"`
	Email       string    `gorm:"type:varchar(255);index"`
	DisplayName string    `gorm:"type:varchar(255)"`
	BirthDate   string    `gorm:"type:varchar(10)"`
	Bio         string    `gorm:"type:text"`
	Interests   string    `gorm:"type:jsonb"`
	Photos      string    `gorm:"type:jsonb"`
	Location    string    `gorm:"type:varchar(255)"`
	Occupation  string    `gorm:"type:varchar(255)"`
	Education   string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for user profiles
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// ProfileRepository implements fraud.ProfileRepository
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{db: client.DB()}
}

// GetByID retrieves a profile by user ID
func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (*fraud.UserProfile, error) {
	var model UserProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fraud.ErrProfileNotFound
		}
		return nil, err
	}
	return modelToProfile(&model), nil
}

func modelToProfile(m *UserProfileModel) *fraud.UserProfile {
	var interests []string
	var photos []fraud.Photo
	json.Unmarshal([]byte(m.Interests), &interests)
	json.Unmarshal([]byte(m.Photos), &photos)

	return &fraud.UserProfile{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		BirthDate:   m.BirthDate,
		Bio:         m.Bio,
		Interests:   interests,
		Photos:      photos,
		Location:    m.Location,
		Occupation:  m.Occupation,
		Education:   m.Education,
	}
}
