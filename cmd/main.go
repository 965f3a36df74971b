package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop_service/config"
	"shop_service/internal/delivery"
	"shop_service/internal/metrics"
	"shop_service/internal/middleware"
	"shop_service/internal/repository"
	"shop_service/internal/session"
	"shop_service/internal/usecase"
	"shop_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	if logLevel < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("Starting Shop Service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	database, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	if err := db.Migrate(ctx, database); err != nil {
		logger.Fatalf("FATAL: Failed to apply schema: %v", err)
	}
	logger.Info("Database schema is up to date.")

	// --- Dependency Injection ---
	storage := repository.NewPostgresStorage(database, logger)

	sessions, closeSessions := openSessionStore(ctx, cfg, logger)
	defer closeSessions()

	auth := usecase.NewAuthUseCase(storage, logger)
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if _, err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			logger.Fatalf("FATAL: Failed to bootstrap admin account: %v", err)
		}
	}

	router := delivery.NewRouter(delivery.RouterDeps{
		Storage:  storage,
		Auth:     auth,
		Sessions: sessions,
		Session: middleware.SessionConfig{
			CookieName: cfg.SessionCookieName,
			TTL:        cfg.SessionTTL,
			Secure:     cfg.CookieSecure,
		},
		Metrics: metrics.New(),
		Log:     logger,
	})
	logger.Info("Routes registered.")

	// --- Start Server ---
	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Warn("Shutdown signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shut down: %v", err)
	}
	logger.Info("Shop Service shut down gracefully.")
}

// openSessionStore builds the configured session backend. The returned func
// releases whatever the backend holds.
func openSessionStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (session.Store, func()) {
	if cfg.SessionBackend == "redis" {
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatalf("FATAL: Failed to connect to redis: %v", err)
		}
		logger.Info("Using redis session store.")
		return session.NewRedisStore(client), func() { _ = client.Close() }
	}

	store := session.NewMemoryStore(logger)
	if err := store.StartSweeper(cfg.SessionSweepSchedule); err != nil {
		logger.Fatalf("FATAL: Invalid SESSION_SWEEP_SCHEDULE '%s': %v", cfg.SessionSweepSchedule, err)
	}
	logger.Infof("Using in-memory session store, sweeping on '%s'.", cfg.SessionSweepSchedule)
	return store, store.StopSweeper
}
