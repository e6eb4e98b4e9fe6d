package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/dealerledger/internal/adapter/http"
	"github.com/iho/dealerledger/internal/adapter/http/handler"
	"github.com/iho/dealerledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/dealerledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/dealerledger/internal/adapter/repository/redis"
	"github.com/iho/dealerledger/internal/infrastructure/config"
	"github.com/iho/dealerledger/internal/infrastructure/eventpublisher"
	"github.com/iho/dealerledger/internal/infrastructure/logger"
	"github.com/iho/dealerledger/internal/infrastructure/logging"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
	"github.com/iho/dealerledger/internal/infrastructure/postgres"
	"github.com/iho/dealerledger/internal/infrastructure/redis"
	"github.com/iho/dealerledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup loggers: zerolog for request/application logs, slog for workers.
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	appLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountCache := redisRepo.NewCache(redisClient)
	var accountRepo usecase.AccountRepository = redisRepo.NewCachedAccountRepository(postgresRepo.NewAccountRepository(pool), accountCache)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	installmentRepo := postgresRepo.NewInstallmentRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	var outboxRepo usecase.OutboxRepository = postgresRepo.NewOutboxRepository(pool)
	if !cfg.OutboxEnabled {
		outboxRepo = postgresRepo.NewNullOutboxRepository()
	}

	// Initialize use cases
	appMetrics := metrics.New()
	scheduleUC := usecase.NewScheduleUseCase()
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	movementUC := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, installmentRepo, outboxRepo, auditRepo, scheduleUC, idGen, appMetrics).
		WithRetry(postgresRepo.NewRetrier())
	installmentUC := usecase.NewInstallmentUseCase(installmentRepo)
	allocationUC := usecase.NewAllocationUseCase()
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, installmentRepo)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC, reconciliationUC)
	movementHandler := handler.NewMovementHandler(movementUC, installmentUC)
	scheduleHandler := handler.NewScheduleHandler(scheduleUC)
	allocationHandler := handler.NewAllocationHandler(allocationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:    accountHandler,
		MovementHandler:   movementHandler,
		ScheduleHandler:   scheduleHandler,
		AllocationHandler: allocationHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		RateLimiter:       rateLimiter,
	})

	// Background workers share one lifecycle, cancelled on shutdown.
	publisherCtx, cancelPublisher := context.WithCancel(ctx)
	defer cancelPublisher()

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-publisherCtx.Done():
				return
			case <-ticker.C:
				rateLimiter.CleanupLimiters()
			}
		}
	}()

	if cfg.OutboxEnabled {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  eventpublisher.NewLogPublisher(appLogger.Logger),
			Logger:     appLogger.Logger,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxPollInterval,
			Retention:  cfg.OutboxRetention,
		})
		go func() {
			if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
				log.Error().Err(err).Msg("outbox publisher stopped")
			}
		}()
	}

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancelPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
