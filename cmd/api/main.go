package main

// @title Spatial Alert Engine API
// @version 1.0.0
// @description Alerting service for the marine protected area monitoring platform. Evaluates alert rules against satellite bleaching products, AIS vessel tracks, sensor readings and citizen reef observations, persists the alerts that fire and delivers them over realtime, email and push channels.
// @description
// @description Core capabilities:
// @description - On-demand, scheduled and stream-triggered rule evaluation
// @description - Batch point-in-area containment checks
// @description - Protected area boundary review with change classification
// @description - Simplified boundary tiers for map rendering
// @description - Live alert feed over websocket (/ws/alerts)

// @contact.name API Support
// @contact.email support@coralledger.blue

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/caribdigital/coralledgerblue-sub004/docs/swagger"
	"github.com/caribdigital/coralledgerblue-sub004/internal/config"
	httpDelivery "github.com/caribdigital/coralledgerblue-sub004/internal/delivery/http"
	"github.com/caribdigital/coralledgerblue-sub004/internal/delivery/http/handler"
	"github.com/caribdigital/coralledgerblue-sub004/internal/delivery/ws"
	"github.com/caribdigital/coralledgerblue-sub004/internal/infrastructure/notify"
	"github.com/caribdigital/coralledgerblue-sub004/internal/observability"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/logger"
	"github.com/caribdigital/coralledgerblue-sub004/internal/repository/cache"
	"github.com/caribdigital/coralledgerblue-sub004/internal/repository/postgres"
	redisRepo "github.com/caribdigital/coralledgerblue-sub004/internal/repository/redis"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Spatial Alert Engine")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize metrics
	collector, err := observability.NewEngineCollector(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	// 7. Initialize Repositories
	ruleRepo := postgres.NewRuleRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	areaRepo := postgres.NewAreaRepository(db)
	readingRepo := postgres.NewReadingRepository(db)
	vesselRepo := postgres.NewVesselRepository(db)
	observationRepo := postgres.NewObservationRepository(db)

	cacheRepo := cache.NewCacheRepository(redisClient)
	realtimePub := redisRepo.NewRealtimePublisher(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 8. Initialize notification senders
	emailSender := notify.NewEmailSender(&cfg.Notify, log)
	pushSender := notify.NewPushSender(&cfg.Notify, log)

	// 9. Initialize Use Cases
	dispatchUC := usecase.NewDispatchUseCase(
		realtimePub,
		emailSender,
		pushSender,
		collector,
		log,
		cfg.Notify.ChannelTimeout,
	)

	engineUC := usecase.NewEngineUseCase(
		ruleRepo,
		alertRepo,
		areaRepo,
		readingRepo,
		vesselRepo,
		observationRepo,
		dispatchUC,
		collector,
		log,
		cfg.Engine.RuleTimeout,
		cfg.Engine.AlertTTL,
	)

	alertUC := usecase.NewAlertUseCase(alertRepo, ruleRepo, collector, log)

	containmentUC := usecase.NewContainmentUseCase(
		areaRepo,
		collector,
		log,
		cfg.Engine.ContainmentWorkers,
	)

	boundaryUC := usecase.NewBoundaryUseCase(
		areaRepo,
		cacheRepo,
		containmentUC,
		log,
		cfg.Cache.TierCacheTTL,
	)

	log.Info("Use cases initialized")

	// 10. Initialize HTTP Handlers and the websocket hub
	alertHandler := handler.NewAlertHandler(engineUC, alertUC, log)
	containmentHandler := handler.NewContainmentHandler(containmentUC, log)
	boundaryHandler := handler.NewBoundaryHandler(boundaryUC, log)

	hub := ws.NewHub(redisClient.Client(), alertUC, log)

	log.Info("HTTP handlers initialized")

	// 11. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		collector,
		alertHandler,
		containmentHandler,
		boundaryHandler,
		hub,
	)

	log.Info("HTTP server initialized")

	// 12. Start the hub and the server in goroutines
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()

	go hub.Run(hubCtx)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Stop the websocket hub
	hubCancel()

	// Close database connection
	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
