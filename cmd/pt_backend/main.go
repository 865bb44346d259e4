package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/player_tracker/internal/core/ports"
	"github.com/SscSPs/player_tracker/internal/core/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/handlers"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/SscSPs/player_tracker/internal/platform/cache"
	"github.com/SscSPs/player_tracker/internal/platform/config"
	"github.com/SscSPs/player_tracker/internal/platform/events"
	"github.com/SscSPs/player_tracker/internal/platform/idempotency"
	"github.com/SscSPs/player_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/player_tracker/pkg/database"
	"github.com/SscSPs/player_tracker/pkg/obs"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const serviceName = "player-tracker"

var version = "dev"

// @title Player Tracker API
// @version 1.0
// @description Casino floor player tracking: visits, rating slips, financial and loyalty ledgers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		env := "development"
		if cfg.IsProduction {
			env = "production"
		}
		shutdownTracer, err := obs.InitTracer(ctx, serviceName, version, env, cfg.OTelEndpoint)
		if err != nil {
			logger.Error("Failed to initialize tracer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(sctx); err != nil {
				logger.Error("Tracer shutdown failed", slog.String("error", err.Error()))
			}
		}()
		logger.Info("Tracing enabled", slog.String("endpoint", cfg.OTelEndpoint))
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis backs the limiter and the replay store when configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	limiterInstance, err := middleware.NewLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var replay idempotency.Store = idempotency.NewMemoryStore()
	if redisClient != nil {
		replay = idempotency.NewRedisStore(redisClient, "pt_idem")
	}

	hub := events.NewHub(cfg.CORSAllowedOrigins, logger)
	publishers := events.MultiPublisher{hub}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("Failed to connect to message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer amqpPub.Close()
		publishers = append(publishers, amqpPub)
		logger.Info("Publishing events to broker", slog.String("exchange", cfg.AMQPExchange))
	}

	container := services.NewServiceContainer(
		cfg,
		pgsql.NewRepositoryProvider(dbPool),
		services.WithEventPublisher(ports.EventPublisher(publishers)),
	)

	if cfg.BootstrapEnabled() {
		err := container.Auth.EnsureBootstrapAdmin(ctx, dto.BootstrapAdmin{
			CasinoName: cfg.BootstrapCasinoName,
			Timezone:   cfg.BootstrapTimezone,
			Email:      cfg.BootstrapAdminEmail,
			Password:   cfg.BootstrapAdminPassword,
		})
		if err != nil {
			logger.Error("Failed to bootstrap first casino", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, handlers.Infrastructure{
		Limiter: limiterInstance,
		Replay:  replay,
		Hub:     hub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// runMigrations applies every pending "up" migration found at migrationsPath.
func runMigrations(logger *slog.Logger, databaseURL, migrationsPath string) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
