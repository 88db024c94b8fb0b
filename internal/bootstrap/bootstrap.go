package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/coursetracker/internal/app/controllers"
	appMigrations "github.com/yigit/coursetracker/internal/app/migrations"
	appRepos "github.com/yigit/coursetracker/internal/app/repositories"
	appRoutes "github.com/yigit/coursetracker/internal/app/routes"
	appServices "github.com/yigit/coursetracker/internal/app/services"
	"github.com/yigit/coursetracker/internal/config"
	"github.com/yigit/coursetracker/internal/db"
	"github.com/yigit/coursetracker/internal/jobs"
	appMiddleware "github.com/yigit/coursetracker/internal/middleware"
	"github.com/yigit/coursetracker/internal/pkg/events"
	"github.com/yigit/coursetracker/internal/pkg/helpers"
	"github.com/yigit/coursetracker/internal/pkg/logger"
	"github.com/yigit/coursetracker/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Provider  *db.Provider
	Executor  *db.Executor
	Repos     *appRepos.Repositories
	Services  *appServices.Services
	Publisher events.Publisher
	Keepalive *jobs.Keepalive

	CourseController          *appControllers.CourseController
	TermController            *appControllers.TermController
	StudentController         *appControllers.StudentController
	StudentTermPlanController *appControllers.StudentTermPlanController
	HealthController          *appControllers.HealthController

	Logger zerolog.Logger
}

// Close releases the publisher and the database connection
func (d *Dependencies) Close() error {
	var err error
	if d.Keepalive != nil {
		d.Keepalive.Stop()
	}
	if d.Publisher != nil {
		if cerr := d.Publisher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close event publisher: %w", cerr)
		}
	}
	if d.Provider != nil {
		if cerr := d.Provider.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
	}
	return err
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

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the connection provider and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.Provider, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	provider, err := db.NewProvider(ctx, &cfg.Database)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if !cfg.Database.MigrationsEnabled {
		lgr.Info().Msg("Database migrations disabled")
		return provider, nil
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(provider.DB(), provider.Dialect())
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		_ = provider.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return provider, nil
}

// SetupPublisher returns the kafka publisher when events are enabled
func SetupPublisher(cfg *config.Config, lgr zerolog.Logger) (events.Publisher, error) {
	if !cfg.Events.Enabled {
		lgr.Info().Msg("Change events disabled")
		return events.NewNoopPublisher(), nil
	}

	brokers := cfg.EventBrokers()
	publisher, err := events.NewKafkaPublisher(brokers, cfg.Events.Topic, helpers.ParseDuration(cfg.Events.WriteTimeout, 5*time.Second))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create event publisher")
		return nil, err
	}
	lgr.Info().Strs("brokers", brokers).Str("topic", cfg.Events.Topic).Msg("Publishing change events to kafka")
	return publisher, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, provider *db.Provider, publisher events.Publisher, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Provider:  provider,
		Publisher: publisher,
		Logger:    lgr,
	}

	deps.Executor = db.NewExecutor(provider)
	deps.Repos = appRepos.NewRepositories(deps.Executor)
	deps.Services = appServices.NewServices(deps.Repos, deps.Executor, publisher)

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, deps.Repos, deps.Services, lgr); err != nil {
			// Log the error but don't necessarily fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	if schedule := strings.TrimSpace(cfg.Database.KeepaliveSchedule); schedule != "" {
		deps.Keepalive = jobs.NewKeepalive(schedule, helpers.ParseDuration(cfg.Database.PingTimeout, 5*time.Second), provider, lgr)
		if err := deps.Keepalive.Start(); err != nil {
			return nil, err
		}
	}

	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.TermController = appControllers.NewTermController(deps.Services.TermService)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.StudentTermPlanController = appControllers.NewStudentTermPlanController(deps.Services.StudentTermPlanService)
	deps.HealthController = appControllers.NewHealthController(provider)

	return deps, nil
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

	return NewRouter(deps, helpers.ParseDuration(cfg.Server.RequestTimeout, 15*time.Second), prometheus.DefaultRegisterer, promhttp.Handler())
}

// NewRouter builds the engine over ready dependencies. Request metrics are
// registered on reg.
func NewRouter(deps *Dependencies, requestTimeout time.Duration, reg prometheus.Registerer, metricsHandler http.Handler) (*gin.Engine, error) {
	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(),
		appMiddleware.NewMetrics(reg).Handle(),
		appMiddleware.Timeout(requestTimeout),
	)

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Course:          deps.CourseController,
		Term:            deps.TermController,
		Student:         deps.StudentController,
		StudentTermPlan: deps.StudentTermPlanController,
		Health:          deps.HealthController,
	}, metricsHandler)

	return router, nil
}
