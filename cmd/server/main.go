package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/iho/gotransfers/internal/adapter/gateway/accounts"
	"github.com/iho/gotransfers/internal/adapter/gateway/cbr"
	"github.com/iho/gotransfers/internal/adapter/gateway/users"
	httpAdapter "github.com/iho/gotransfers/internal/adapter/http"
	"github.com/iho/gotransfers/internal/adapter/http/handler"
	"github.com/iho/gotransfers/internal/adapter/http/middleware"
	natsAdapter "github.com/iho/gotransfers/internal/adapter/messaging/nats"
	postgresRepo "github.com/iho/gotransfers/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gotransfers/internal/adapter/repository/redis"
	"github.com/iho/gotransfers/internal/infrastructure/auth"
	"github.com/iho/gotransfers/internal/infrastructure/config"
	"github.com/iho/gotransfers/internal/infrastructure/eventpublisher"
	"github.com/iho/gotransfers/internal/infrastructure/logger"
	"github.com/iho/gotransfers/internal/infrastructure/metrics"
	"github.com/iho/gotransfers/internal/infrastructure/postgres"
	"github.com/iho/gotransfers/internal/infrastructure/redis"
	"github.com/iho/gotransfers/internal/infrastructure/scheduler"
	"github.com/iho/gotransfers/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "gotransfers"})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations before taking traffic
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Connect to NATS
	busPublisher, err := natsAdapter.Connect(cfg.NATSURL, cfg.TransfersTopic, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to nats")
	}
	defer busPublisher.Close()
	appLogger.Info().Msg("connected to nats")

	appMetrics := metrics.New()

	// Remote service gateways
	accountsGateway := accounts.NewClient(cfg.AccountsURL, cfg.GatewayTimeout, cfg.BalanceMaxAttempts, cfg.BalanceRetryDelay, appMetrics, appLogger)
	usersGateway := users.NewClient(cfg.UsersURL, cfg.GatewayTimeout, appMetrics)
	rateFeed := cbr.NewClient(cfg.RatesURL, cfg.GatewayTimeout, appMetrics)
	rateSource := redisRepo.NewRateCache(rateFeed, redisClient, cfg.RateCacheTTL, appLogger)

	// Deferred redelivery timers
	sched := scheduler.NewTimerScheduler()
	defer sched.Stop()

	publisher := eventpublisher.NewRetryingPublisher(
		busPublisher,
		sched,
		cfg.PublishMaxAttempts,
		cfg.PublishRetryDelay,
		cfg.PublishDeferDelay,
		cfg.GatewayTimeout,
		appMetrics,
		appLogger,
	)

	// Repositories and use cases
	transferRepo := postgresRepo.NewTransferRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewUUIDGenerator()

	converter := usecase.NewCurrencyConverter(rateSource)
	coordinator := usecase.NewBalanceCoordinator(accountsGateway, converter, idGen, appLogger)
	transferUC := usecase.NewTransferUseCase(accountsGateway, usersGateway, transferRepo, coordinator, publisher, appMetrics, appLogger)

	// Handlers
	transferHandler := handler.NewTransferHandler(transferUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient, busPublisher)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransferHandler:  transferHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          appMetrics,
		JWTManager:       jwtManager,
		RateLimit:        middleware.NewRateLimiter(100, 200, appMetrics),
		Logger:           appLogger,
	})

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
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
