package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multi-city-planner/internal/config"
	"multi-city-planner/internal/logger"
	"multi-city-planner/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg := config.Load()
	appLog := logger.NewLogger(cfg.LogLevel)

	srv, err := server.New(server.Config{
		Addr:             cfg.ServerAddr,
		DBPath:           cfg.DBPath,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
		MetricsNamespace: cfg.MetricsNamespace,
		Planner:          cfg.PlannerConfig(),
	}, appLog)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if _, err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	appLog.Info("Starting graceful shutdown", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not gracefully shutdown the server: %w", err)
	}

	appLog.Info("Server stopped")
	return nil
}
