package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/tindi/chamaledger/internal/adapter/http"
	"github.com/tindi/chamaledger/internal/adapter/http/handler"
	"github.com/tindi/chamaledger/internal/adapter/http/middleware"
	postgresRepo "github.com/tindi/chamaledger/internal/adapter/repository/postgres"
	redisRepo "github.com/tindi/chamaledger/internal/adapter/repository/redis"
	"github.com/tindi/chamaledger/internal/infrastructure/config"
	"github.com/tindi/chamaledger/internal/infrastructure/logger"
	"github.com/tindi/chamaledger/internal/infrastructure/metrics"
	"github.com/tindi/chamaledger/internal/infrastructure/postgres"
	"github.com/tindi/chamaledger/internal/infrastructure/redis"
	"github.com/tindi/chamaledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	memberRepo := postgresRepo.NewMemberRepository(pool)
	loanRepo := postgresRepo.NewLoanRepository(pool)
	loanTxRepo := postgresRepo.NewLoanTransactionRepository(pool)
	savingsRepo := postgresRepo.NewSavingsRepository(pool)
	cycleRepo := postgresRepo.NewCycleRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	sessionStore := redisRepo.NewSessionStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Initialize use cases
	memberUC := usecase.NewMemberUseCase(memberRepo, idGen)
	savingsUC := usecase.NewSavingsUseCase(savingsRepo, memberRepo, idGen)
	cycleUC := usecase.NewCycleUseCase(txManager, cycleRepo, memberRepo, idGen)
	loanUC := usecase.NewLoanUseCase(txManager, loanRepo, loanTxRepo, memberRepo, auditRepo, idGen).
		WithRetrier(retrier).
		WithMetrics(appMetrics)
	statementUC := usecase.NewStatementUseCase(memberRepo, savingsRepo, cycleRepo, loanRepo)
	dashboardUC := usecase.NewDashboardUseCase(memberRepo, savingsRepo, loanRepo, cache)
	userUC := usecase.NewUserUseCase(userRepo, sessionStore, idGen, cfg.SessionTTL)

	// Keep the pool gauge fresh without instrumenting every query.
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			appMetrics.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				rateLimiter.CleanupLimiters()
			}
		}()
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(userUC, cfg.SecureCookies),
		MemberHandler:    handler.NewMemberHandler(memberUC),
		SavingsHandler:   handler.NewSavingsHandler(savingsUC),
		CycleHandler:     handler.NewCycleHandler(cycleUC),
		LoanHandler:      handler.NewLoanHandler(loanUC),
		StatementHandler: handler.NewStatementHandler(statementUC),
		DashboardHandler: handler.NewDashboardHandler(dashboardUC),
		UserHandler:      handler.NewUserHandler(userUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Authenticator:    userUC,
		RateLimiter:      rateLimiter,
		Logging:          middleware.NewLoggingMiddleware(log),
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

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
