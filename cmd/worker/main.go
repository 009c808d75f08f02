package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caribdigital/coralledgerblue-sub004/internal/config"
	"github.com/caribdigital/coralledgerblue-sub004/internal/infrastructure/notify"
	"github.com/caribdigital/coralledgerblue-sub004/internal/observability"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/logger"
	"github.com/caribdigital/coralledgerblue-sub004/internal/repository/cache"
	"github.com/caribdigital/coralledgerblue-sub004/internal/repository/postgres"
	redisRepo "github.com/caribdigital/coralledgerblue-sub004/internal/repository/redis"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/worker"
	"github.com/caribdigital/coralledgerblue-sub004/internal/worker/engine"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Alert Evaluation Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Duration("eval_interval", cfg.Engine.EvalInterval),
		zap.Duration("expiry_sweep_interval", cfg.Engine.ExpirySweepInterval),
		zap.Int("containment_workers", cfg.Engine.ContainmentWorkers))

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

	// 5. Initialize metrics
	collector, err := observability.NewEngineCollector(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	// 6. Initialize repositories
	ruleRepo := postgres.NewRuleRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	areaRepo := postgres.NewAreaRepository(db)
	readingRepo := postgres.NewReadingRepository(db)
	vesselRepo := postgres.NewVesselRepository(db)
	observationRepo := postgres.NewObservationRepository(db)

	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	realtimePub := redisRepo.NewRealtimePublisher(redisClient.Client(), log)

	// 7. Initialize notification senders and use cases
	emailSender := notify.NewEmailSender(&cfg.Notify, log)
	pushSender := notify.NewPushSender(&cfg.Notify, log)

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

	// 8. Initialize workers
	evaluationWorker := engine.NewEvaluationWorker(
		engineUC,
		cfg.Engine.EvalInterval,
		log,
	)

	triggerWorker := engine.NewTriggerWorker(
		streamRepo,
		engineUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	expiryWorker := engine.NewExpiryWorker(
		alertUC,
		cfg.Engine.ExpirySweepInterval,
		log,
	)

	// 9. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(evaluationWorker)
	workerManager.Register(triggerWorker)
	workerManager.Register(expiryWorker)

	// 10. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
