package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/lmsadmin/internal/app/auth"
	appControllers "github.com/yigit/lmsadmin/internal/app/controllers"
	appMigrations "github.com/yigit/lmsadmin/internal/app/migrations"
	appRepos "github.com/yigit/lmsadmin/internal/app/repositories"
	appRoutes "github.com/yigit/lmsadmin/internal/app/routes"
	appServices "github.com/yigit/lmsadmin/internal/app/services"
	"github.com/yigit/lmsadmin/internal/config"
	"github.com/yigit/lmsadmin/internal/db"
	appMiddleware "github.com/yigit/lmsadmin/internal/middleware"
	pkgAuth "github.com/yigit/lmsadmin/internal/pkg/auth"
	"github.com/yigit/lmsadmin/internal/pkg/helpers"
	"github.com/yigit/lmsadmin/internal/pkg/logger"
	"github.com/yigit/lmsadmin/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	JWTService     *pkgAuth.JWTService
	Sessions       *pkgAuth.SessionManager
	Revocation     pkgAuth.RevocationStore
	AuthzService   *appAuth.AuthorizationService
	AuthMiddleware *appMiddleware.AuthMiddleware

	AuthService                *appServices.AuthService
	CourseService              appServices.CourseService
	MentorService              appServices.MentorService
	StudentCourseMentorService appServices.StudentCourseMentorService

	Controllers appRoutes.Controllers
	Logger      zerolog.Logger

	// closers run on shutdown, e.g. the redis client behind the revocation store
	closers []func() error
}

// Close releases resources opened while building the dependencies
func (d *Dependencies) Close() error {
	var firstErr error
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, applies migrations and seeds the default admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(cfg.GetMigrationURL(), lgr)
	if err := migrator.MigrateFromDirectory(cfg.Database.MigrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultAdmin(ctx, appRepos.NewUserRepository(dbPool), cfg, lgr); err != nil {
		// Startup continues; an admin can still be created manually.
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Sessions = pkgAuth.NewSessionManager(pkgAuth.SessionConfig{
		Name:   cfg.Session.Name,
		Secret: cfg.Session.Secret,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	})

	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store, err := pkgAuth.NewRedisRevocationStore(ctx, cfg.Redis.URL)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to redis")
			return nil, fmt.Errorf("failed to initialize token revocation store: %w", err)
		}
		deps.Revocation = store
		deps.closers = append(deps.closers, store.Close)
		lgr.Info().Msg("Token revocation backed by redis")
	} else {
		deps.Revocation = pkgAuth.NewMemoryRevocationStore()
		lgr.Warn().Msg("REDIS_URL not set, token revocation is kept in process memory")
	}

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.UserRepository)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, deps.Revocation, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.MentorService = appServices.NewMentorService(deps.Repos.MentorRepository, deps.Repos.CourseRepository, lgr)
	deps.StudentCourseMentorService = appServices.NewStudentCourseMentorService(
		deps.Repos.StudentCourseMentorRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.MentorRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Sessions, deps.Revocation, deps.AuthzService)

	deps.Controllers = appRoutes.Controllers{
		Auth:                appControllers.NewAuthController(deps.AuthService, deps.Sessions, lgr),
		Course:              appControllers.NewCourseController(deps.CourseService),
		Mentor:              appControllers.NewMentorController(deps.MentorService),
		StudentCourseMentor: appControllers.NewStudentCourseMentorController(deps.StudentCourseMentorService),
	}

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

	appMiddleware.SetupValidator()

	router := gin.New()
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger())
	if cfg.Metrics.Enabled {
		router.Use(appMiddleware.Metrics())
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, cfg.Metrics.Enabled)

	return router
}
