package config

import (
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Fraud    FraudConfig    `mapstructure:"fraud"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// FraudConfig holds fraud scoring configuration
type FraudConfig struct {
	// Risk brackets
	HighThreshold   float64 `mapstructure:"high_threshold"`
	MediumThreshold float64 `mapstructure:"medium_threshold"`
	LowThreshold    float64 `mapstructure:"low_threshold"`

	// Dimension weights
	ProfileWeight  float64 `mapstructure:"profile_weight"`
	BehaviorWeight float64 `mapstructure:"behavior_weight"`
	NetworkWeight  float64 `mapstructure:"network_weight"`
	ContentWeight  float64 `mapstructure:"content_weight"`

	// Behavior limits
	MaxMessagesPerHour int `mapstructure:"max_messages_per_hour"`
	MaxLikesPerHour    int `mapstructure:"max_likes_per_hour"`
	MaxReports         int `mapstructure:"max_reports"`

	// Network limits
	MaxLoginLocations int `mapstructure:"max_login_locations"`
	MaxDevices        int `mapstructure:"max_devices"`

	// Analysis timeout
	AnalysisTimeout time.Duration `mapstructure:"analysis_timeout"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "fraud_user",
			Password:        "",
			Name:            "fraud_scoring",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         6379,
			Password:     "",
			DB:           0,
			PoolSize:     10,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			CacheTTL:     5 * time.Minute,
		},
		Fraud: FraudConfig{
			HighThreshold:      0.80,
			MediumThreshold:    0.60,
			LowThreshold:       0.30,
			ProfileWeight:      0.25,
			BehaviorWeight:     0.35,
			NetworkWeight:      0.20,
			ContentWeight:      0.20,
			MaxMessagesPerHour: 50,
			MaxLikesPerHour:    100,
			MaxReports:         3,
			MaxLoginLocations:  5,
			MaxDevices:         3,
			AnalysisTimeout:    10 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
