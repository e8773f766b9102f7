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

	appControllers "github.com/yigit/libraryhub/internal/app/controllers"
	appMigrations "github.com/yigit/libraryhub/internal/app/migrations"
	appRepos "github.com/yigit/libraryhub/internal/app/repositories"
	appRoutes "github.com/yigit/libraryhub/internal/app/routes"
	appServices "github.com/yigit/libraryhub/internal/app/services"
	"github.com/yigit/libraryhub/internal/config"
	"github.com/yigit/libraryhub/internal/db"
	appMiddleware "github.com/yigit/libraryhub/internal/middleware"
	pkgAuth "github.com/yigit/libraryhub/internal/pkg/auth"
	"github.com/yigit/libraryhub/internal/pkg/email"
	"github.com/yigit/libraryhub/internal/pkg/logger"
	"github.com/yigit/libraryhub/internal/pkg/validation"
	"github.com/yigit/libraryhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService     *appServices.AuthService
	AuthorService   *appServices.AuthorService
	CategoryService *appServices.CategoryService
	CourseService   *appServices.CourseService
	BookService     *appServices.BookService
	LendingService  *appServices.LendingService
	Controllers     appRoutes.Controllers
	AuthMiddleware  *appMiddleware.AuthMiddleware
	Repos           *appRepos.Repositories
	JWTService      *pkgAuth.JWTService
	Notifier        email.Notifier
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Notifier = email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.CourseRepository,
		deps.JWTService,
		deps.Notifier,
		lgr,
	)
	deps.AuthorService = appServices.NewAuthorService(deps.Repos.AuthorRepository, lgr)
	deps.CategoryService = appServices.NewCategoryService(deps.Repos.CategoryRepository, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.BookService = appServices.NewBookService(
		deps.Repos.BookRepository,
		deps.Repos.AuthorRepository,
		deps.Repos.CategoryRepository,
		lgr,
	)
	deps.LendingService = appServices.NewLendingService(
		deps.Repos.LendingRepository,
		appServices.LendingPolicy{LoanPeriod: cfg.LoanPeriod(), DailyFine: cfg.DailyFineAmount()},
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)

	deps.Controllers = appRoutes.Controllers{
		User:     appControllers.NewUserController(deps.AuthService, lgr),
		Author:   appControllers.NewAuthorController(deps.AuthorService),
		Category: appControllers.NewCategoryController(deps.CategoryService),
		Course:   appControllers.NewCourseController(deps.CourseService),
		Book:     appControllers.NewBookController(deps.BookService),
		Lending:  appControllers.NewLendingController(deps.LendingService, lgr),
	}

	return deps, nil
}

// PrepareData seeds the default admin and drops revocations that can no longer matter.
// Failures are logged; startup continues.
func PrepareData(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	admin := seed.Admin{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}
	if err := seed.CreateDefaultData(ctx, deps.Repos.UserRepository, admin, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	if n, err := deps.AuthService.PurgeExpiredRevocations(ctx); err != nil {
		deps.Logger.Warn().Err(err).Msg("Failed to purge expired token revocations")
	} else if n > 0 {
		deps.Logger.Info().Int64("purged", n).Msg("Purged expired token revocations")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router, nil
}
