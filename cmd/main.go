/*
Package main is the entry point for the GoldBook application.

It is responsible for loading configuration, initializing the global logging system,
connecting to PostgreSQL and Redis, starting the exchange-rate refresher and its
broadcast hub, setting up the HTTP server, and gracefully handling operating system
interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"goldbook/internal/app/db"
	"goldbook/internal/app/ledger"
	"goldbook/internal/app/rates"
	"goldbook/internal/app/session"
	"goldbook/internal/configs"
	"goldbook/internal/handler"
	"goldbook/internal/pkg/logx"
)

func main() {
	// A missing .env file is fine; production supplies real environment variables.
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Dur("rate_refresh_interval", cfg.RateRefreshInterval).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	store := db.NewStore(pool)

	if cfg.BotOwnerID != 0 {
		if err := store.EnsureOwner(ctx, cfg.BotOwnerID); err != nil {
			logx.Fatal(err, "Failed to ensure bot owner account")
		}
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logx.Fatal(err, "Failed to parse Redis URL")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logx.Fatal(err, "Failed to connect to Redis")
	}

	sessions := session.NewRedisStore(redisClient)
	negotiator := session.NewNegotiator(store, sessions, cfg.SessionSecret, cfg.TelegramBotToken, cfg.BotOwnerID)

	ledgerService := ledger.NewService(store)
	rateService := rates.NewService(store, cfg.RateRefreshInterval)

	ratesHub := rates.NewHub()
	refresher := rates.NewRefresher(rateService, ratesHub, cfg.RateRefreshInterval)
	go refresher.Run(ctx)

	deps := &handler.AppDeps{
		Config:     cfg,
		Users:      store,
		Ledger:     ledgerService,
		Rates:      rateService,
		RatesHub:   ratesHub,
		Negotiator: negotiator,
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("GoldBook Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	ratesHub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
