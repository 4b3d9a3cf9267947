package container

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/config"
	"github.com/tzchat/tzchat-backend/internal/delivery/http"
	"github.com/tzchat/tzchat-backend/internal/delivery/http/handler"
	"github.com/tzchat/tzchat-backend/internal/delivery/http/middleware"
	"github.com/tzchat/tzchat-backend/internal/infrastructure/database"
	"github.com/tzchat/tzchat-backend/internal/infrastructure/server"
	"github.com/tzchat/tzchat-backend/internal/logger"
	"github.com/tzchat/tzchat-backend/internal/repository/postgres"
	"github.com/tzchat/tzchat-backend/internal/usecase/auth"
	"github.com/tzchat/tzchat-backend/internal/usecase/dailyscore"
	"github.com/tzchat/tzchat-backend/internal/usecase/emergency"
	"github.com/tzchat/tzchat-backend/internal/usecase/profile"
	"github.com/tzchat/tzchat-backend/internal/usecase/search"
	"github.com/tzchat/tzchat-backend/internal/usecase/target"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Server   *server.Server
	ScoreJob *dailyscore.Job
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize logger
	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis; the target board degrades to direct reads without it
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, target cache disabled", zap.Error(err))
		redisClient = nil
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	scoreRepo := postgres.NewScoreRepository(db)
	friendReqRepo := postgres.NewFriendRequestRepository(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		sessionRepo,
		cfg.JWT.AccessSecret,
		time.Duration(cfg.JWT.AccessExpiryMin)*time.Minute,
		time.Duration(cfg.JWT.RefreshExpiryDay)*24*time.Hour,
	)

	profileUseCase := profile.NewProfileUseCase(userRepo)

	searchUseCase := search.NewSearchUseCase(
		userRepo,
		friendReqRepo,
		search.Options{
			EmergencyWindow:      cfg.Match.EmergencyWindow(),
			ReciprocalPreference: cfg.Match.ReciprocalPreference,
		},
		log,
	)

	emergencyUseCase := emergency.NewEmergencyUseCase(userRepo, cfg.Match.EmergencyWindow())

	targetUseCase := target.NewTargetUseCase(scoreRepo, userRepo, redisClient, log)

	scoreJob := dailyscore.NewJob(userRepo, eventRepo, scoreRepo, cfg.Score.HalfLife(), log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	searchHandler := handler.NewSearchHandler(searchUseCase)
	targetHandler := handler.NewTargetHandler(targetUseCase)
	emergencyHandler := handler.NewEmergencyHandler(emergencyUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		searchHandler,
		targetHandler,
		emergencyHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Redis:    redisClient,
		Server:   srv,
		ScoreJob: scoreJob,
	}, nil
}

// Close releases held connections.
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			return err
		}
	}
	return c.DB.Close()
}
