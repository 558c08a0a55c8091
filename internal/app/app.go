package app

import (
	"context"
	"time"

	"github.com/go-redis/redis"
	"gorm.io/gorm"

	"github.com/careerforge/careerforge/internal/config"
	"github.com/careerforge/careerforge/internal/domains/aptitude"
	"github.com/careerforge/careerforge/internal/domains/interview"
	"github.com/careerforge/careerforge/internal/domains/jobfit"
	"github.com/careerforge/careerforge/internal/domains/user"
	aptitudeRepo "github.com/careerforge/careerforge/internal/repository/aptitude"
	sessionRepo "github.com/careerforge/careerforge/internal/repository/session"
	userRepo "github.com/careerforge/careerforge/internal/repository/user"
	"github.com/careerforge/careerforge/internal/server"
	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
)

// App represents the application with all its dependencies
type App struct {
	Config       *config.Settings
	Logger       *Logger.Logger
	DB           *gorm.DB
	RC           *redis.Client
	EngineRouter *engine.Router
	// repos
	UserRepo    user.UserRepository
	SessionRepo interview.SessionRepository
	ServerDeps  server.Dependencies
}

// NewApp creates a new application instance with all dependencies properly wired
func NewApp(cfg *config.Settings, logger *Logger.Logger, db *gorm.DB, rc *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		RC:     rc,
	}

	if err := app.setupDependencies(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupDependencies initializes all application dependencies
func (a *App) setupDependencies() error {
	// 1. Engine router
	factory := NewEngineRouterFactory(a.Config.Engines, a.Logger)
	router, err := factory.CreateRouter(context.Background())
	if err != nil {
		return err
	}
	a.EngineRouter = router

	// 2. Repositories
	a.UserRepo = userRepo.NewGormUserRepo(a.DB)
	a.SessionRepo = sessionRepo.NewGormSessionRepo(a.DB)
	answerKeys := aptitudeRepo.NewRedisAnswerKeyStore(a.RC)

	// JWT settings from config
	jwtSecret := a.Config.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		a.Logger.Warn("JWT secret not configured, using default (not secure for production)")
	}

	tokenTTLHours := a.Config.Auth.TokenTTLHours
	if tokenTTLHours == 0 {
		tokenTTLHours = 24
	}
	tokenTTL := time.Duration(tokenTTLHours) * time.Hour

	// 3. Services
	userService := user.NewUserService(a.UserRepo, a.Logger, jwtSecret, tokenTTL)
	interviewService := interview.New(a.EngineRouter, a.SessionRepo, a.Logger)
	jobFitService := jobfit.New(a.EngineRouter, a.Logger)
	aptitudeService := aptitude.New(a.EngineRouter, answerKeys, a.Logger)

	a.ServerDeps = server.NewServerDependencies(
		userService,
		interviewService,
		jobFitService,
		aptitudeService,
		a.EngineRouter,
		a.Logger,
		a.Config,
	)

	return nil
}

// GetServerDependencies returns the server dependencies
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}
