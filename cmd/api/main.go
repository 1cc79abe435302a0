package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	fraudapp "fraud-scoring-engine/internal/application/fraud"
	"fraud-scoring-engine/internal/domain/fraud"
	"fraud-scoring-engine/internal/infrastructure/cache/redis"
	"fraud-scoring-engine/internal/infrastructure/database/postgres"
	"fraud-scoring-engine/internal/infrastructure/http/router"
	"fraud-scoring-engine/internal/interfaces/http/handler"
	"fraud-scoring-engine/internal/pkg/config"
	"fraud-scoring-engine/internal/pkg/logger"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: Could not load config file, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting fraud scoring API",
		zap.String("version", version),
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
	)

	// Database connection
	var dbClient *postgres.Client
	var profileRepo fraud.ProfileRepository
	var historyRepo fraud.HistoryRepository
	var assessmentRepo fraud.AssessmentRepository

	dbClient, err = postgres.NewClient(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		zlog.Warn("database connection failed, running with in-memory stores", zap.Error(err))
		dbClient = nil
		profileRepo = NewMemoryProfileRepository()
		historyRepo = NewMemoryHistoryRepository()
		assessmentRepo = NewMemoryAssessmentRepository()
	} else {
		zlog.Info("connected to PostgreSQL",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
		)
		profileRepo = postgres.NewProfileRepository(dbClient)
		historyRepo = postgres.NewHistoryRepository(dbClient)
		assessmentRepo = postgres.NewAssessmentRepository(dbClient)
	}

	// Redis connection
	var redisClient *redis.Client
	var assessmentCache fraudapp.AssessmentCache

	redisClient, err = redis.NewClient(redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		zlog.Warn("redis connection failed, assessment caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		zlog.Info("connected to Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
		assessmentCache = redis.NewAssessmentCache(redisClient, cfg.Redis.CacheTTL)
	}

	engine := fraud.NewEngine(engineConfig(cfg))
	service := fraud.NewService(engine, profileRepo, historyRepo, assessmentRepo, zlog)

	analyzeUserUseCase := fraudapp.NewAnalyzeUserUseCase(
		service,
		assessmentCache,
		zlog,
		cfg.Fraud.AnalysisTimeout,
	)

	fraudHandler := handler.NewFraudHandler(analyzeUserUseCase)

	var dbHealthChecker handler.HealthChecker
	var redisHealthChecker handler.HealthChecker
	if dbClient != nil {
		dbHealthChecker = dbClient
	}
	if redisClient != nil {
		redisHealthChecker = redisClient
	}
	healthHandler := handler.NewHealthHandler(dbHealthChecker, redisHealthChecker, version)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	r := router.NewRouter(fraudHandler, healthHandler, metricsPath)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
	}

	if dbClient != nil {
		dbClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	zlog.Info("server stopped")
}

// engineConfig maps the loaded application config onto the domain engine
// configuration, keeping the engine defaults where the file is silent
func engineConfig(cfg *config.Config) fraud.Config {
	ec := fraud.DefaultConfig()

	ec.Weights = fraud.Weights{
		Profile:  decimal.NewFromFloat(cfg.Fraud.ProfileWeight),
		Behavior: decimal.NewFromFloat(cfg.Fraud.BehaviorWeight),
		Network:  decimal.NewFromFloat(cfg.Fraud.NetworkWeight),
		Content:  decimal.NewFromFloat(cfg.Fraud.ContentWeight),
	}
	ec.RiskThresholds = fraud.RiskThresholds{
		High:   decimal.NewFromFloat(cfg.Fraud.HighThreshold),
		Medium: decimal.NewFromFloat(cfg.Fraud.MediumThreshold),
		Low:    decimal.NewFromFloat(cfg.Fraud.LowThreshold),
	}
	ec.Thresholds.MaxMessagesPerHour = cfg.Fraud.MaxMessagesPerHour
	ec.Thresholds.MaxLikesPerHour = cfg.Fraud.MaxLikesPerHour
	ec.Thresholds.MaxReports = cfg.Fraud.MaxReports
	ec.Thresholds.MaxLoginLocations = cfg.Fraud.MaxLoginLocations
	ec.Thresholds.MaxDevices = cfg.Fraud.MaxDevices

	return ec
}

// In-memory stores for standalone mode (when the database is not available)

// MemoryProfileRepository implements fraud.ProfileRepository in memory
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*fraud.UserProfile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[string]*fraud.UserProfile)}
}

func (r *MemoryProfileRepository) GetByID(ctx context.Context, userID string) (*fraud.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, fraud.ErrProfileNotFound
}

func (r *MemoryProfileRepository) Put(profile *fraud.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
}

// MemoryHistoryRepository implements fraud.HistoryRepository in memory
type MemoryHistoryRepository struct {
	mu        sync.RWMutex
	histories map[string]*fraud.UserHistory
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{histories: make(map[string]*fraud.UserHistory)}
}

func (r *MemoryHistoryRepository) history(userID string) *fraud.UserHistory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.histories[userID]; ok {
		return h
	}
	return &fraud.UserHistory{}
}

func (r *MemoryHistoryRepository) Put(userID string, history *fraud.UserHistory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.histories[userID] = history
}

func (r *MemoryHistoryRepository) MessagesBySender(ctx context.Context, userID string) ([]fraud.Message, error) {
	return r.history(userID).Messages, nil
}

func (r *MemoryHistoryRepository) LikesByUser(ctx context.Context, userID string) ([]fraud.Like, error) {
	return r.history(userID).Likes, nil
}

func (r *MemoryHistoryRepository) ReportsByReportedUser(ctx context.Context, userID string) ([]fraud.Report, error) {
	return r.history(userID).ReportsReceived, nil
}

func (r *MemoryHistoryRepository) SessionsByUser(ctx context.Context, userID string) ([]fraud.LoginSession, error) {
	return r.history(userID).LoginSessions, nil
}

func (r *MemoryHistoryRepository) DevicesByUser(ctx context.Context, userID string) ([]fraud.Device, error) {
	return r.history(userID).Devices, nil
}

func (r *MemoryHistoryRepository) ConnectionsByUser(ctx context.Context, userID string) ([]fraud.Connection, error) {
	return r.history(userID).Connections, nil
}

// MemoryAssessmentRepository implements fraud.AssessmentRepository in memory
type MemoryAssessmentRepository struct {
	mu          sync.RWMutex
	assessments map[string]*fraud.FraudAssessment
}

func NewMemoryAssessmentRepository() *MemoryAssessmentRepository {
	return &MemoryAssessmentRepository{assessments: make(map[string]*fraud.FraudAssessment)}
}

func (r *MemoryAssessmentRepository) Upsert(ctx context.Context, assessment *fraud.FraudAssessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assessments[assessment.UserID] = assessment
	return nil
}

func (r *MemoryAssessmentRepository) GetByUserID(ctx context.Context, userID string) (*fraud.FraudAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.assessments[userID]; ok {
		return a, nil
	}
	return nil, fraud.ErrAssessmentNotFound
}
