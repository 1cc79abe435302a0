package fraud

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiskLevel represents the severity of account fraud risk
type RiskLevel string

const (
	RiskLevelMinimal RiskLevel = "minimal"
	RiskLevelLow     RiskLevel = "low"
	RiskLevelMedium  RiskLevel = "medium"
	RiskLevelHigh    RiskLevel = "high"
)

// Timestamp is the single conversion point for the two timestamp shapes that
// appear in history documents: a store-native temporal object
// ({"seconds":...,"nanos":...} or {"_seconds":...,"_nanoseconds":...}) and a
// raw date value (RFC 3339 string or epoch milliseconds). Every analyzer goes
// through this type instead of sniffing shapes itself.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time in a Timestamp
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			// Date-only values also occur in exported documents
			parsed, err = time.Parse("2006-01-02", s)
			if err != nil {
				return fmt.Errorf("unsupported timestamp string %q", s)
			}
		}
		t.Time = parsed
		return nil

	case '{':
		var obj struct {
			Seconds  *int64 `json:"seconds"`
			Nanos    *int64 `json:"nanos"`
			USeconds *int64 `json:"_seconds"`
			UNanos   *int64 `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		sec, nanos := obj.Seconds, obj.Nanos
		if sec == nil {
			sec, nanos = obj.USeconds, obj.UNanos
		}
		if sec == nil {
			return fmt.Errorf("unsupported timestamp object %s", data)
		}
		var n int64
		if nanos != nil {
			n = *nanos
		}
		t.Time = time.Unix(*sec, n).UTC()
		return nil

	default:
		var millis int64
		if err := json.Unmarshal(data, &millis); err != nil {
			return fmt.Errorf("unsupported timestamp value %s", data)
		}
		t.Time = time.UnixMilli(millis).UTC()
		return nil
	}
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Photo is a profile photo, optionally carrying a perceptual content hash
type Photo struct {
	URL  string `json:"url,omitempty"`
	Hash string `json:"hash,omitempty"`
}

// UserProfile is the static account metadata the engine scores.
// Optional fields may be empty; emptiness is never an error.
type UserProfile struct {
	ID          string   `json:"id"`
	Email       string   `json:"email,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	BirthDate   string   `json:"birthDate,omitempty"` // year-first, e.g. "1990-04-12"
	Bio         string   `json:"bio,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Photos      []Photo  `json:"photos,omitempty"`
	Location    string   `json:"location,omitempty"`
	Occupation  string   `json:"occupation,omitempty"`
	Education   string   `json:"education,omitempty"`
}

// Message is a message authored by the analyzed user
type Message struct {
	SenderID  string    `json:"senderId,omitempty"`
	Content   string    `json:"content,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Like is a like given by the analyzed user
type Like struct {
	UserID    string    `json:"userId,omitempty"`
	TargetID  string    `json:"targetId,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Report is a report filed against the analyzed user
type Report struct {
	ReportedUserID string    `json:"reportedUserId,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      Timestamp `json:"createdAt"`
}

// GeoPoint is a login coordinate pair
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IPMetadata carries the VPN/proxy flags attached to a session's IP
type IPMetadata struct {
	IsVPN   bool `json:"is_vpn"`
	IsProxy bool `json:"is_proxy"`
}

// LoginSession is one authentication session of the analyzed user
type LoginSession struct {
	Location  *GeoPoint   `json:"location,omitempty"`
	IPInfo    *IPMetadata `json:"ip_info,omitempty"`
	CreatedAt Timestamp   `json:"createdAt"`
}

// Device is a device the account has been seen on
type Device struct {
	DeviceID string `json:"deviceId,omitempty"`
	Platform string `json:"platform,omitempty"`
}

// Connection is a social link to another account
type Connection struct {
	UserID string `json:"userId,omitempty"`
}

// UserHistory is an immutable interaction snapshot for one assessment.
// ReportsReceived distinguishes nil (the reports sub-fetch failed, so the
// field is unknown) from an empty non-nil slice (known to be zero reports);
// the confidence estimator depends on that distinction.
type UserHistory struct {
	Messages        []Message      `json:"messages,omitempty"`
	Likes           []Like         `json:"likes,omitempty"`
	ReportsReceived []Report       `json:"reportsReceived,omitempty"`
	LoginSessions   []LoginSession `json:"loginSessions,omitempty"`
	Devices         []Device       `json:"devices,omitempty"`
	Connections     []Connection   `json:"connections,omitempty"`
}

// ScoreBreakdown carries the four dimension sub-scores, rounded to two
// decimals for presentation
type ScoreBreakdown struct {
	ProfileScore  decimal.Decimal `json:"profileScore"`
	BehaviorScore decimal.Decimal `json:"behaviorScore"`
	NetworkScore  decimal.Decimal `json:"networkScore"`
	ContentScore  decimal.Decimal `json:"contentScore"`
}

// FraudAssessment is the engine output for a single analysis run.
// Created fresh on every invocation, never patched incrementally.
type FraudAssessment struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"userId"`

	FraudScore   decimal.Decimal `json:"fraudScore"`   // composite, rounded to 2 decimals
	ScorePercent int64           `json:"scorePercent"` // rounded 0-100 presentation form
	RiskLevel    RiskLevel       `json:"riskLevel"`

	Indicators      []string `json:"indicators"`
	Recommendations []string `json:"recommendations"`

	Confidence  decimal.Decimal `json:"confidence"` // data availability, rounded to 2 decimals
	NeedsReview bool            `json:"needsReview"`

	AnalyzedAt time.Time      `json:"analyzedAt"`
	Details    ScoreBreakdown `json:"details"`
}
