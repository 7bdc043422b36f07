package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"canteen/internal/auth"
	"canteen/internal/cache"
	"canteen/internal/clock"
	"canteen/internal/config"
	"canteen/internal/coupon"
	"canteen/internal/database"
	"canteen/internal/handler"
	"canteen/internal/notify"
	"canteen/internal/repository"
	"canteen/internal/roster"
	"canteen/internal/router"
	"canteen/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting canteen API server")

	location, err := cfg.Ledger.Location()
	if err != nil {
		return fmt.Errorf("failed to load ledger time zone: %w", err)
	}

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Migrate and open the ledger database
	pool, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	couponRepo := repository.NewCouponRepository(pool, logger)
	credentialRepo := repository.NewCredentialRepository(pool, logger)
	var employeeRepo repository.EmployeeRepository = repository.NewEmployeeRepository(pool, logger)
	var menuRepo repository.MenuRepository = repository.NewMenuRepository(pool, logger)

	if cfg.Redis.Enabled {
		redisCache := cache.New(cfg.Redis, logger)
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, directory reads will go to the database")
		}
		employeeRepo = cache.NewEmployeeRepository(employeeRepo, redisCache)
		menuRepo = cache.NewMenuRepository(menuRepo, redisCache)
	}

	// Initialize OTP notifier
	var notifier notify.Notifier
	switch cfg.Notifier.Provider {
	case "sms":
		notifier = notify.NewSMSNotifier(cfg.Notifier, logger)
	default:
		notifier = notify.NewLogNotifier(logger)
		logger.Warn().Msg("OTPs are not delivered, using the log notifier")
	}

	// Initialize roster loader with S3 and local fallback
	fileLoader := roster.NewFileLoader(cfg.Roster.Dir, logger)
	var s3Loader roster.Loader
	if cfg.S3.Enabled {
		s3Loader, err = roster.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		}
	} else {
		logger.Info().Msg("using local file system for roster files (S3 disabled)")
	}
	rosterLoader := roster.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled && s3Loader != nil, logger)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	issuanceService := service.NewIssuanceService(
		couponRepo,
		employeeRepo,
		menuRepo,
		coupon.NewGenerator(cfg.Ledger.MaxGenerationAttempts, logger),
		notifier,
		clock.System(),
		service.IssuanceOptions{
			Location:      location,
			MaxAttempts:   cfg.Ledger.MaxGenerationAttempts,
			NotifyTimeout: cfg.Notifier.Timeout,
		},
		logger,
	)
	redemptionService := service.NewRedemptionService(couponRepo, logger)
	reportService := service.NewReportService(couponRepo, employeeRepo, cfg.Ledger.ReportMaxDays, logger)
	accountService := service.NewAccountService(credentialRepo, tokens, logger)
	directoryService := service.NewDirectoryService(employeeRepo, menuRepo, rosterLoader, logger)

	if err := accountService.EnsureBootstrapAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, cfg.Auth.AdminFullName); err != nil {
		return fmt.Errorf("failed to bootstrap credentials: %w", err)
	}

	// Initialize router
	mux := router.New(router.Handlers{
		Health: handler.NewHealthHandler(pool, logger),
		Auth:   handler.NewAuthHandler(accountService, logger),
		Coupon: handler.NewCouponHandler(issuanceService, redemptionService, logger),
		Report: handler.NewReportHandler(reportService, logger),
		Admin:  handler.NewAdminHandler(directoryService, accountService, logger),
	}, tokens, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("time_zone", location.String()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
