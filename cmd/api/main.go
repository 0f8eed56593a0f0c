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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/asbestos-leads/cmd/mainconfig"
	"github.com/wolfman30/asbestos-leads/internal/api/router"
	"github.com/wolfman30/asbestos-leads/internal/app/bootstrap"
	appconfig "github.com/wolfman30/asbestos-leads/internal/config"
	"github.com/wolfman30/asbestos-leads/internal/export"
	httpmiddleware "github.com/wolfman30/asbestos-leads/internal/http/middleware"
	"github.com/wolfman30/asbestos-leads/internal/leads"
	"github.com/wolfman30/asbestos-leads/internal/observability/metrics"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	workerShutdownTimeout  = 30 * time.Second
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting asbestos-leads API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsCfg, err := mainconfig.LoadOptionalAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Storage
	pool := bootstrap.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}
	leadsRepo := bootstrap.BuildLeadRepository(pool, logger)

	metricsHandler, leadMetrics := setupMetrics()

	// Export pipeline
	queue, memoryQueue, err := bootstrap.BuildExportQueue(cfg, awsCfg)
	if err != nil {
		logger.Error("failed to configure export queue", "error", err)
		os.Exit(1)
	}
	publisher := export.NewPublisher(queue, logger)
	inlineWorker, err := setupInlineWorker(ctx, cfg, logger, memoryQueue, leadsRepo, leadMetrics)
	if err != nil {
		logger.Error("failed to start inline export worker", "error", err)
		os.Exit(1)
	}

	// Staff alerts
	sender, provider := bootstrap.BuildEmailSender(cfg, awsCfg, logger)
	alerter := bootstrap.BuildLeadAlerter(cfg, sender, logger)
	logger.Info("lead alerts configured", "provider", provider, "enabled", alerter != nil)

	// Rate limiting
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	limiter := bootstrap.BuildContactLimiter(cfg, redisClient)
	if mem, ok := limiter.(*httpmiddleware.MemoryLimiter); ok {
		go mem.Cleanup(ctx, limiterCleanupInterval, cfg.ContactRateWindow)
	}

	service := leads.NewService(leadsRepo, logger,
		leads.WithPublisher(publisher),
		leads.WithAlerter(alerter),
		leads.WithMetrics(leadMetrics),
	)
	leadsHandler := leads.NewHandler(service, leadMetrics, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		ContactLimiter:     limiter,
		ContactRateWindow:  cfg.ContactRateWindow,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if pool != nil {
		routerCfg.HealthCheck = pool.Ping
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	cancel()
	waitForInlineWorker(inlineWorker, logger)
	if memoryQueue != nil {
		memoryQueue.Close()
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics registers lead metrics on a private registry alongside the
// Go runtime collectors.
func setupMetrics() (http.Handler, *metrics.LeadMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	leadMetrics := metrics.NewLeadMetrics(registry)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), leadMetrics
}

// setupInlineWorker drains the in-process queue when no separate export
// worker is deployed. It returns nil when the SQS queue is in use.
func setupInlineWorker(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, memoryQueue *export.MemoryQueue, repo leads.Repository, leadMetrics *metrics.LeadMetrics) (*export.Worker, error) {
	if !cfg.UseMemoryQueue || memoryQueue == nil {
		return nil, nil
	}
	exporter, err := bootstrap.BuildExporter(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	opts := append(bootstrap.ExportWorkerOptions(cfg), export.WithMetrics(leadMetrics))
	worker := export.NewWorker(memoryQueue, repo, exporter, logger, opts...)
	worker.Start(ctx)
	logger.Info("inline export worker started", "workers", cfg.ExportWorkerCount)
	return worker, nil
}

func waitForInlineWorker(worker *export.Worker, logger *logging.Logger) {
	if worker == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		worker.Wait()
		close(done)
	}()
	select {
	case <-done:
		logger.Info("inline export worker stopped")
	case <-time.After(workerShutdownTimeout):
		logger.Error("inline export worker shutdown timed out")
	}
}
