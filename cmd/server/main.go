package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	httpAdapter "github.com/finarc/fintxn/internal/adapter/http"
	"github.com/finarc/fintxn/internal/adapter/http/handler"
	"github.com/finarc/fintxn/internal/adapter/http/middleware"
	postgresRepo "github.com/finarc/fintxn/internal/adapter/repository/postgres"
	redisRepo "github.com/finarc/fintxn/internal/adapter/repository/redis"
	"github.com/finarc/fintxn/internal/infrastructure/config"
	"github.com/finarc/fintxn/internal/infrastructure/logger"
	"github.com/finarc/fintxn/internal/infrastructure/metrics"
	"github.com/finarc/fintxn/internal/infrastructure/postgres"
	"github.com/finarc/fintxn/internal/infrastructure/redis"
	"github.com/finarc/fintxn/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.DefaultContextLogger = &log

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	journalRepo := postgresRepo.NewJournalRepository(pool)
	distRepo := postgresRepo.NewDistributionRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	directory := postgresRepo.NewAccountDirectory(pool)
	balances := postgresRepo.NewBalanceQuery(pool, directory, cfg.BaseCurrency)
	rates := redisRepo.NewRateCache(redisClient, postgresRepo.NewStoredRateLookup(pool), cfg.RateCacheTTL)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Services
	postingSvc := usecase.NewPostingService(journalRepo, directory, rates, idGen, cfg.BaseCurrency, log, m)
	distributionSvc := usecase.NewDistributionService(distRepo, postingSvc, balances, idGen, log, m)
	paymentSvc := usecase.NewPaymentService(distRepo, paymentRepo, postingSvc, idGen, log, m)
	orchestrator := usecase.NewOrchestrator(distributionSvc, paymentSvc, log)

	// Handlers
	postingHandler := handler.NewPostingHandler(postingSvc)
	distributionHandler := handler.NewDistributionHandler(distributionSvc, orchestrator)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PostingHandler:      postingHandler,
		DistributionHandler: distributionHandler,
		PaymentHandler:      paymentHandler,
		HealthHandler:       healthHandler,
		IdempotencyStore:    idempotencyStore,
		RateLimiter:         middleware.NewRateLimiter(50, 100),
		Logger:              log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
