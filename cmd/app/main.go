package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/daechan-jo/auto-store-services-order/cmd"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/services"
	"github.com/daechan-jo/auto-store-services-order/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	app.NotifyDispatcher().Start()
	app.InboundDispatcher().Start()
	if err = app.JobManager().StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	app.HTTPServer().RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if serveErr := e.Start(addr); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", serveErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop producers before consumers so queued notifications still drain.
	app.JobManager().StopAll()
	app.InboundDispatcher().Stop()
	app.NotifyDispatcher().Stop()

	if err = e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if err = app.Close(); err != nil {
		logger.Error("closing redis connection failed", "error", err)
	}
	logger.Info("shutdown complete")
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort: envOrDefault("HTTP_PORT", "8080"),

		RedisAddr:     envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		OrderSourceChannel: envOrDefault("ORDER_SOURCE_CHANNEL", "order-source-queue"),
		FulfillmentChannel: envOrDefault("FULFILLMENT_CHANNEL", "fulfillment-queue"),
		MailChannel:        envOrDefault("MAIL_CHANNEL", "mail-queue"),
		JobChannel:         envOrDefault("JOB_CHANNEL", "order-queue"),

		StoreID:  os.Getenv("STORE_ID"),
		VendorID: os.Getenv("VENDOR_ID"),

		CronSpec:      envOrDefault("ORDER_CRON_SPEC", jobs.DefaultCronSpec),
		MergeStrategy: envOrDefault("MERGE_STRATEGY", services.ReceiverStrategyName),

		SettleDelay:     envDuration("SETTLE_DELAY", time.Second),
		SendTimeout:     envDuration("SEND_TIMEOUT", 30*time.Second),
		NotifyQueueSize: envInt("NOTIFY_QUEUE_SIZE", 64),
		NotifyTimeout:   envDuration("NOTIFY_TIMEOUT", 10*time.Second),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %v", key, err)
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", key, err)
	}
	return parsed
}
