package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/blockpulse/whale-sentry/internal/adapter"
	"github.com/blockpulse/whale-sentry/internal/api/server"
	"github.com/blockpulse/whale-sentry/internal/bot"
	"github.com/blockpulse/whale-sentry/internal/config"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/notifier"
	"github.com/blockpulse/whale-sentry/internal/pipeline"
	"github.com/blockpulse/whale-sentry/internal/providers/exchange"
	"github.com/blockpulse/whale-sentry/internal/providers/moralis"
	"github.com/blockpulse/whale-sentry/internal/providers/pricing"
	"github.com/blockpulse/whale-sentry/internal/registry"
	"github.com/blockpulse/whale-sentry/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.Load(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "whale-sentry",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Whale Sentry")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to run database migrations", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Shared HTTP client with retry for the provider APIs
	httpClient := adapter.NewHTTPClient(30 * time.Second)

	// Streams provider and price source
	streams := moralis.NewClient(moralis.Config{
		BaseURL: cfg.Moralis.StreamsURL,
		APIKey:  cfg.Moralis.APIKey,
		ChainID: cfg.Moralis.ChainID,
	}, httpClient)

	prices := pricing.NewClient(pricing.Config{
		APIURL: cfg.Moralis.APIURL,
		APIKey: cfg.Moralis.APIKey,
	}, httpClient)

	// Trade gateway
	trader := exchange.NewClient(exchange.Config{
		BaseURL:    cfg.Exchange.BaseURL,
		APIKey:     cfg.Exchange.APIKey,
		APISecret:  cfg.Exchange.APISecret,
		QuoteAsset: cfg.Exchange.QuoteAsset,
	})

	// Address registry and Telegram bot
	callbackURL := ""
	if cfg.Moralis.CallbackBaseURL != "" {
		callbackURL = strings.TrimRight(cfg.Moralis.CallbackBaseURL, "/") + "/webhook"
	}
	defaultThreshold := decimal.NewFromFloat(cfg.Watch.DefaultThresholdUSD)
	reg := registry.New(dataStore, streams, callbackURL, defaultThreshold)

	botService, err := bot.New(cfg.Telegram.BotToken, reg)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create telegram bot", zap.Error(err))
	}

	// Processing pipeline
	alerts := notifier.NewTelegram(botService.Bot())
	tradeFraction := decimal.NewFromFloat(cfg.Exchange.TradeFraction)
	ingestor := pipeline.New(dataStore, prices, trader, alerts, tradeFraction)

	// Start bot long polling
	go botService.Run(ctx)

	// Create and start server
	serverConfig := server.Config{
		Debug:         cfg.Debug,
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		ReadTimeout:   time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:  time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:   time.Duration(cfg.Server.IdleTimeout) * time.Second,
		WebhookSecret: cfg.Moralis.WebhookSecret,
	}
	srv := server.New(serverConfig, dataStore, ingestor)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Shutdown with a fresh context, the run context is already canceled
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Whale Sentry stopped")
}
