package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devtrack/engine/internal/api"
	"github.com/devtrack/engine/internal/api/handlers"
	"github.com/devtrack/engine/internal/api/validators"
	"github.com/devtrack/engine/internal/migrations"
	"github.com/devtrack/engine/internal/repository"
	"github.com/devtrack/engine/internal/services"
	"github.com/devtrack/engine/internal/tracking"
	"github.com/devtrack/engine/pkg/config"
	"github.com/devtrack/engine/pkg/database"
	"github.com/devtrack/engine/pkg/logger"
	"go.uber.org/zap"

	_ "github.com/devtrack/engine/docs"
)

// @title           DevTrack API
// @version         1.0
// @description     Project tracking with features, bugs, improvements and an append-only activity log.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting DevTrack Engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db_driver", cfg.DBDriver),
	)

	// Connect to database
	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DatabaseURL,
		Verbose:    cfg.AppEnv != "production",
		MaxRetries: 5,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// sqlite is the local development store; keep its schema current on boot.
	if cfg.DBDriver == database.DriverSQLite {
		if err := migrations.Run(db); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
	}

	// JWT Secret from environment
	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	recorder := tracking.NewRecorder()

	authSvc := services.NewAuthService(userRepo, jwtSecret, cfg.JWTTTL)
	projectSvc := services.NewProjectService(db, projectRepo, recorder)
	activitySvc := services.NewActivityService(activityRepo)

	// Initialize handlers
	v := validators.New()
	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	router := api.NewRouter(api.Dependencies{
		Ctx:            bgCtx,
		HMACSecret:     jwtSecret,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustProxy:     cfg.TrustProxy,

		HealthHandler:       handlers.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		AuthHandler:         handlers.NewAuthHandler(authSvc, v, cfg.JWTTTL),
		ProjectsHandler:     handlers.NewProjectsHandler(projectSvc),
		FeaturesHandler:     handlers.NewWorkItemsHandler(services.NewFeatureService(db, recorder), v),
		BugsHandler:         handlers.NewWorkItemsHandler(services.NewBugService(db, recorder), v),
		ImprovementsHandler: handlers.NewWorkItemsHandler(services.NewImprovementService(db, recorder), v),
		ActivitiesHandler:   handlers.NewActivitiesHandler(activitySvc),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
