package bootstrap

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/academia/internal/app/controllers"
	appRepos "github.com/yigit/academia/internal/app/repositories"
	appRoutes "github.com/yigit/academia/internal/app/routes"
	appServices "github.com/yigit/academia/internal/app/services"
	"github.com/yigit/academia/internal/config"
	"github.com/yigit/academia/internal/db"
	appMiddleware "github.com/yigit/academia/internal/middleware"
	"github.com/yigit/academia/internal/pkg/logger"
	"github.com/yigit/academia/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService    appServices.CourseService // Interface type
	UserService      appServices.UserService   // Interface type
	Enrollments      *appServices.EnrollmentManager
	CourseController *appControllers.CourseController
	UserController   *appControllers.UserController
	HealthController *appControllers.HealthController
	Repos            *appRepos.Repositories
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: logger.ParseFormat(cfg.Logging.Format),
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to the document store.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.MongoDB, error) {
	lgr.Info().Str("database", cfg.Database.Name).Msg("Establishing database connection...")
	database, err := db.NewMongoDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// BuildDependencies initializes application repositories, their indexes, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.MongoDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Database(), cfg.DatabaseTimeout())
	if err := deps.Repos.EnsureIndexes(context.Background(), cfg.Database.UniqueIndexes); err != nil {
		// Duplicates already stored prevent a unique index, the service checks still hold
		lgr.Error().Err(err).Bool("unique", cfg.Database.UniqueIndexes).Msg("Failed to create indexes, proceeding anyway...")
	}

	deps.Enrollments = appServices.NewEnrollmentManager(deps.Repos.CourseRepository)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.UserRepository,
		logger.Component("course_service"),
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Enrollments,
		logger.Component("user_service"),
	)

	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.HealthController = appControllers.NewHealthController(database)

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(context.Background(), deps.CourseService, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	// Handlers pass the gin context to services, let it carry the request cancellation
	router.ContextWithFallback = true
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupRouter(router,
		deps.CourseController,
		deps.UserController,
		deps.HealthController,
	)

	return router
}
