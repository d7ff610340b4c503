package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	frameworkhandler "github.com/phi-beta/DIACC-PCTF/internal/framework/handler"
	frameworkmetrics "github.com/phi-beta/DIACC-PCTF/internal/framework/metrics"
	frameworkservice "github.com/phi-beta/DIACC-PCTF/internal/framework/service"
	frameworkstore "github.com/phi-beta/DIACC-PCTF/internal/framework/store"
	"github.com/phi-beta/DIACC-PCTF/internal/platform/config"
	"github.com/phi-beta/DIACC-PCTF/internal/platform/httpserver"
	"github.com/phi-beta/DIACC-PCTF/internal/platform/logger"
	httpapi "github.com/phi-beta/DIACC-PCTF/internal/transport/http"
	registryhandler "github.com/phi-beta/DIACC-PCTF/internal/trustregistry/handler"
	registrymetrics "github.com/phi-beta/DIACC-PCTF/internal/trustregistry/metrics"
	registryservice "github.com/phi-beta/DIACC-PCTF/internal/trustregistry/service"
	registrystore "github.com/phi-beta/DIACC-PCTF/internal/trustregistry/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	recorder := audit.NewSlogRecorder(log)

	entryStore := registrystore.NewInMemory()
	registry := registryservice.New(entryStore, entryStore,
		registryservice.WithLogger(log),
		registryservice.WithRecorder(recorder),
		registryservice.WithMetrics(registrymetrics.New()),
	)

	orchestrator := frameworkservice.New(frameworkstore.NewInMemory(),
		frameworkservice.WithLogger(log),
		frameworkservice.WithRecorder(recorder),
		frameworkservice.WithMetrics(frameworkmetrics.New()),
	)

	router := httpapi.NewRouter(log,
		registryhandler.New(registry, log),
		frameworkhandler.New(orchestrator, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	metricsSrv := httpserver.New(cfg.MetricsAddr, promhttp.Handler())

	log.Info("starting pctf registry", "addr", cfg.Addr, "metrics_addr", cfg.MetricsAddr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err)
		}
	}()

	// Periodic registry maintenance. An integrity failure aborts one sweep,
	// never the process.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if _, err := registry.RunMaintenance(sweepCtx); err != nil {
					log.Error("maintenance sweep failed", "error", err)
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	_ = metricsSrv.Shutdown(ctx)
}
