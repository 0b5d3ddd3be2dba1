package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	api "todoapi/internal/adapter/http"
	"todoapi/internal/adapter/telemetry"
	"todoapi/pkg/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()

	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	tel, err := telemetry.Init(ctx, cfg)

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	metrics := telemetry.NewAppMetrics(tel.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := api.StartServer(ctx, cfg, metrics); err != nil {
			log.Fatal("Server failed:", err)
		}
	}()

	<-c
	slog.Info("Shutting down gracefully...")
}
