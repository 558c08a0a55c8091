package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/careerforge/careerforge/internal/config"
	"github.com/careerforge/careerforge/internal/domains/aptitude"
	"github.com/careerforge/careerforge/internal/domains/interview"
	"github.com/careerforge/careerforge/internal/domains/jobfit"
	"github.com/careerforge/careerforge/internal/domains/user"
	"github.com/careerforge/careerforge/internal/handlers"
	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
)

// Dependencies carries everything route registration needs.
type Dependencies struct {
	UserService      user.UserService
	InterviewService interview.Service
	JobFitService    jobfit.Service
	AptitudeService  aptitude.Service
	EngineRouter     *engine.Router
	Logger           *Logger.Logger
	Configs          *config.Settings
}

func NewServerDependencies(
	userService user.UserService,
	interviewService interview.Service,
	jobFitService jobfit.Service,
	aptitudeService aptitude.Service,
	engineRouter *engine.Router,
	logger *Logger.Logger,
	configs *config.Settings,
) Dependencies {
	return Dependencies{
		UserService:      userService,
		InterviewService: interviewService,
		JobFitService:    jobFitService,
		AptitudeService:  aptitudeService,
		EngineRouter:     engineRouter,
		Logger:           logger,
		Configs:          configs,
	}
}

// InitializeRoutes wires every handler into the gin engine.
func InitializeRoutes(cfg *config.Settings, r *gin.Engine, dep Dependencies) {
	r.Use(handlers.CORSMiddleware())
	r.Use(handlers.RequestLoggerMiddleware(dep.Logger))
	r.Use(handlers.ErrorHandlerMiddleware(dep.Logger))

	r.GET("/", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"message": "Server healthy"}) })
	r.GET("/health", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"status": "ok"}) })

	userHandler := handlers.NewUserHandler(dep.UserService, dep.Logger)
	interviewHandler := handlers.NewInterviewHandler(dep.InterviewService, dep.Logger)
	jobFitHandler := handlers.NewJobFitHandler(dep.JobFitService, dep.Logger)
	aptitudeHandler := handlers.NewAptitudeHandler(dep.AptitudeService, dep.Logger)
	engineHandler := handlers.NewEngineHandler(dep.EngineRouter, cfg.Engines, dep.Logger)

	api := r.Group("/api")
	{
		userHandler.RegisterUserRoutes(api)
		interviewHandler.RegisterInterviewRoutes(api)
		jobFitHandler.RegisterJobFitRoutes(api)
		aptitudeHandler.RegisterAptitudeRoutes(api)
	}

	// Engine admin surface keeps its own versioned prefix.
	v1 := r.Group("/api/v1")
	{
		engineHandler.RegisterEngineRoutes(v1)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
