package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/asbestos-leads/cmd/mainconfig"
	"github.com/wolfman30/asbestos-leads/internal/app/bootstrap"
	appconfig "github.com/wolfman30/asbestos-leads/internal/config"
	"github.com/wolfman30/asbestos-leads/internal/export"
	"github.com/wolfman30/asbestos-leads/internal/observability/metrics"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.UseMemoryQueue {
		logger.Error("export worker requires USE_MEMORY_QUEUE=false and EXPORT_QUEUE_URL; the API drains the memory queue itself")
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		logger.Error("export worker requires DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsConfig, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	queue, _, err := bootstrap.BuildExportQueue(cfg, &awsConfig)
	if err != nil {
		logger.Error("failed to configure export queue", "error", err)
		os.Exit(1)
	}

	pool := bootstrap.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
	if pool == nil {
		os.Exit(1)
	}
	defer pool.Close()
	repo := bootstrap.BuildLeadRepository(pool, logger)

	exporter, err := bootstrap.BuildExporter(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build exporter", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	workerMetrics := metrics.NewLeadMetrics(registry)
	metricsSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	opts := append(bootstrap.ExportWorkerOptions(cfg), export.WithMetrics(workerMetrics))
	worker := export.NewWorker(queue, repo, exporter, logger, opts...)
	worker.Start(ctx)
	logger.Info("export worker started", "workers", cfg.ExportWorkerCount, "queue", cfg.ExportQueueURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down export worker...")
	cancel()

	doneCtx, doneCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer doneCancel()
	_ = metricsSrv.Shutdown(doneCtx)

	waitCh := make(chan struct{})
	go func() {
		worker.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		logger.Info("export worker stopped")
	case <-doneCtx.Done():
		logger.Error("export worker shutdown timed out", "error", doneCtx.Err())
	}
}
