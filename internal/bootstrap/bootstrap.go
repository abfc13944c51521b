package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	appControllers "github.com/drivera/aulanet/internal/app/controllers"
	appMigrations "github.com/drivera/aulanet/internal/app/migrations"
	appRepos "github.com/drivera/aulanet/internal/app/repositories"
	appRoutes "github.com/drivera/aulanet/internal/app/routes"
	appServices "github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/config"
	"github.com/drivera/aulanet/internal/db"
	appMiddleware "github.com/drivera/aulanet/internal/middleware"
	pkgAuth "github.com/drivera/aulanet/internal/pkg/auth"
	"github.com/drivera/aulanet/internal/pkg/helpers"
	"github.com/drivera/aulanet/internal/pkg/logger"
	"github.com/drivera/aulanet/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	CourseService        *appServices.CourseService
	StudentService       *appServices.StudentService
	AttendanceService    *appServices.AttendanceService
	PermissionService    *appServices.PermissionService
	FeedbackService      *appServices.FeedbackService
	DashboardService     *appServices.DashboardService
	ReportService        *appServices.ReportService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	StudentController    *appControllers.StudentController
	AttendanceController *appControllers.AttendanceController
	PermissionController *appControllers.PermissionController
	FeedbackController   *appControllers.FeedbackController
	DashboardController  *appControllers.DashboardController
	ReportController     *appControllers.ReportController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	DBPool               *pgxpool.Pool
	Logger               zerolog.Logger
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
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, DBPool: dbPool}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.Account,
		deps.Repos.Student,
		deps.Repos.Course,
		deps.JWTService,
	)
	deps.CourseService = appServices.NewCourseService(deps.Repos.Course, deps.Repos.Account)
	deps.StudentService = appServices.NewStudentService(deps.Repos.Student, deps.Repos.Account, deps.Repos.Course)
	deps.AttendanceService = appServices.NewAttendanceService(deps.Repos.Student, deps.Repos.Attendance, deps.Repos.Course)
	deps.PermissionService = appServices.NewPermissionService(deps.Repos.Permission, deps.Repos.Student, deps.Repos.Course)
	deps.FeedbackService = appServices.NewFeedbackService(deps.Repos.Feedback, deps.Repos.Student, deps.Repos.Course)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos.Student, deps.Repos.Permission, deps.Repos.Course)
	deps.ReportService = appServices.NewReportService(deps.Repos.Student, deps.Repos.Attendance, deps.Repos.Course)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.Account)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.PermissionController = appControllers.NewPermissionController(deps.PermissionService)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.FeedbackService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.StudentController,
		deps.AttendanceController,
		deps.PermissionController,
		deps.FeedbackController,
		deps.DashboardController,
		deps.ReportController,
		deps.AuthMiddleware,
		deps.DBPool,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
