package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/api"
	"github.com/oubata/HealThea/internal/auth"
	"github.com/oubata/HealThea/internal/catalog"
	"github.com/oubata/HealThea/internal/checkout"
	"github.com/oubata/HealThea/internal/commerce"
	"github.com/oubata/HealThea/internal/config"
	"github.com/oubata/HealThea/internal/registry"
	"github.com/oubata/HealThea/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting HealThea storefront API",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("commerce_backend", cfg.Commerce.BaseURL),
	)

	// Initialize database
	db, err := session.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := session.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Session state and idempotency repositories
	stateRepo := session.NewPostgresRepository(db, logger)

	// Redis-backed catalog cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Commerce backend clients
	commerceClient := commerce.NewClient(cfg.Commerce, logger)

	// The admin client backs registration compensation; without admin
	// credentials orphaned identities are only logged.
	var compensator auth.IdentityCompensator
	if cfg.Commerce.AdminEmail != "" && cfg.Commerce.AdminPassword != "" {
		adminClient := commerce.NewAdminClient(cfg.Commerce.BaseURL, logger)
		loginCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := adminClient.Login(loginCtx, cfg.Commerce.AdminEmail, cfg.Commerce.AdminPassword); err != nil {
			logger.Warn("Admin login failed, registration compensation disabled", zap.Error(err))
		} else {
			compensator = adminClient
		}
		cancel()
	}

	catalogSvc := catalog.NewService(commerceClient, catalog.NewRedisCache(redisClient), logger)

	providers := checkout.Providers{
		Preferred: cfg.Commerce.PreferredPaymentProvider,
		Default:   cfg.Commerce.DefaultPaymentProvider,
	}

	// Per-session stores
	reg := registry.New(commerceClient, catalogSvc, stateRepo, compensator, providers, logger)

	// Initialize router
	router := api.NewRouter(cfg, reg, catalogSvc, stateRepo, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Evict idle per-session stores; persisted state survives eviction
	pruneCtx, stopPrune := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-pruneCtx.Done():
				return
			case <-ticker.C:
				reg.Prune(time.Hour)
			}
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopPrune()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
