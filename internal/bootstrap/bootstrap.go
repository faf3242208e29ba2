package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/profrate/profrate/internal/app/controllers"
	appMigrations "github.com/profrate/profrate/internal/app/migrations"
	appRepos "github.com/profrate/profrate/internal/app/repositories"
	appRoutes "github.com/profrate/profrate/internal/app/routes"
	appServices "github.com/profrate/profrate/internal/app/services"
	"github.com/profrate/profrate/internal/config"
	"github.com/profrate/profrate/internal/db"
	appMiddleware "github.com/profrate/profrate/internal/middleware"
	pkgAuth "github.com/profrate/profrate/internal/pkg/auth"
	"github.com/profrate/profrate/internal/pkg/logger"
	"github.com/profrate/profrate/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	CatalogueService    *appServices.CatalogueService
	RatingService       *appServices.RatingService
	AuthController      *appControllers.AuthController
	CatalogueController *appControllers.CatalogueController
	RatingController    *appControllers.RatingController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default catalogue.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

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

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding is best effort, a partially seeded catalogue is still usable
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  config.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: config.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)

	deps.CatalogueService = appServices.NewCatalogueService(
		deps.Repos.ProfessorRepository,
		deps.Repos.ModuleRepository,
		deps.Repos.ModuleInstanceRepository,
	)

	deps.RatingService = appServices.NewRatingService(
		deps.Repos.RatingRepository,
		deps.Repos.ProfessorRepository,
		deps.Repos.ModuleRepository,
		deps.Repos.ModuleInstanceRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CatalogueController = appControllers.NewCatalogueController(deps.CatalogueService)
	deps.RatingController = appControllers.NewRatingController(deps.RatingService, lgr)

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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogueController,
		deps.RatingController,
		deps.AuthMiddleware,
	)

	return router
}
