package postgres

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"fraud-scoring-engine/internal/domain/fraud"
)

// History rows keep the event document as jsonb so timestamps arrive in
// whatever shape the producing system wrote (temporal objects, RFC 3339
// strings, epoch millis) and decode through fraud.Timestamp.

// MessageModel is the database model for sent messages
type MessageModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	SenderID  string    `gorm:"type:varchar(64);index;not null"`
	Payload   string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for messages
func (MessageModel) TableName() string {
	return "user_messages"
}

// LikeModel is the database model for given likes
type LikeModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);index;not null"`
	Payload   string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for likes
func (LikeModel) TableName() string {
	return "user_likes"
}

// ReportModel is the database model for received reports
type ReportModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	ReportedUserID string    `gorm:"type:varchar(64);index;not null"`
	Payload        string    `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time `gorm:"index;not null"`
}

// TableName returns the table name for reports
func (ReportModel) TableName() string {
	return "user_reports"
}

// SessionModel is the database model for login sessions
type SessionModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);index;not null"`
	Payload   string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for sessions
func (SessionModel) TableName() string {
	return "user_sessions"
}

// DeviceModel is the database model for seen devices
type DeviceModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);index;not null"`
	Payload   string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for devices
func (DeviceModel) TableName() string {
	return "user_devices"
}

// ConnectionModel is the database model for social connections
type ConnectionModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);index;not null"`
	Payload   string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for connections
func (ConnectionModel) TableName() string {
	return "user_connections"
}

// HistoryRepository implements fraud.HistoryRepository
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(client *Client) *HistoryRepository {
	return &HistoryRepository{db: client.DB()}
}

// MessagesBySender retrieves the messages authored by a user, oldest first
func (r *HistoryRepository) MessagesBySender(ctx context.Context, userID string) ([]fraud.Message, error) {
	var models []MessageModel
	if err := r.db.WithContext(ctx).
		Where("sender_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	messages := make([]fraud.Message, 0, len(models))
	for _, m := range models {
		var msg fraud.Message
		if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// LikesByUser retrieves the likes given by a user
func (r *HistoryRepository) LikesByUser(ctx context.Context, userID string) ([]fraud.Like, error) {
	var models []LikeModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	likes := make([]fraud.Like, 0, len(models))
	for _, m := range models {
		var like fraud.Like
		if err := json.Unmarshal([]byte(m.Payload), &like); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, nil
}

// ReportsByReportedUser retrieves the reports filed against a user
func (r *HistoryRepository) ReportsByReportedUser(ctx context.Context, userID string) ([]fraud.Report, error) {
	var models []ReportModel
	if err := r.db.WithContext(ctx).
		Where("reported_user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	reports := make([]fraud.Report, 0, len(models))
	for _, m := range models {
		var report fraud.Report
		if err := json.Unmarshal([]byte(m.Payload), &report); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// SessionsByUser retrieves the login sessions of a user, oldest first
func (r *HistoryRepository) SessionsByUser(ctx context.Context, userID string) ([]fraud.LoginSession, error) {
	var models []SessionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	sessions := make([]fraud.LoginSession, 0, len(models))
	for _, m := range models {
		var session fraud.LoginSession
		if err := json.Unmarshal([]byte(m.Payload), &session); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// DevicesByUser retrieves the devices a user was seen on
func (r *HistoryRepository) DevicesByUser(ctx context.Context, userID string) ([]fraud.Device, error) {
	var models []DeviceModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&models).Error; err != nil {
		return nil, err
	}

	devices := make([]fraud.Device, 0, len(models))
	for _, m := range models {
		var device fraud.Device
		if err := json.Unmarshal([]byte(m.Payload), &device); err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}
	return devices, nil
}

// ConnectionsByUser retrieves the social connections of a user
func (r *HistoryRepository) ConnectionsByUser(ctx context.Context, userID string) ([]fraud.Connection, error) {
	var models []ConnectionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&models).Error; err != nil {
		return nil, err
	}

	connections := make([]fraud.Connection, 0, len(models))
	for _, m := range models {
		var connection fraud.Connection
		if err := json.Unmarshal([]byte(m.Payload), &connection); err != nil {
			return nil, err
		}
		connections = append(connections, connection)
	}
	return connections, nil
}
