package export

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/asbestos-leads/internal/leads"
	"github.com/wolfman30/asbestos-leads/internal/observability/metrics"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

var exportTracer = otel.Tracer("asbestos.internal.export")

const (
	defaultWorkerCount   = 1
	defaultWaitSeconds   = 20
	defaultBatchSize     = 5
	defaultMaxAttempts   = 3
	defaultRetryBackoff  = 15 * time.Second
	maxRetryBackoff      = 15 * time.Minute
	maxWaitSeconds       = 20
	maxReceiveBatchSize  = 10
	deleteTimeoutSeconds = 5
	exportTimeout        = 30 * time.Second
)

// Exporter writes one lead to the external destination.
type Exporter interface {
	Export(ctx context.Context, lead *leads.Lead) error
}

// leadStore is the part of leads.Repository the worker needs.
type leadStore interface {
	GetByID(ctx context.Context, id string) (*leads.Lead, error)
	UpdateExportStatus(ctx context.Context, id string, status leads.ExportStatus, at time.Time) error
}

type workerConfig struct {
	workers          int
	receiveWaitSecs  int
	receiveBatchSize int
	maxAttempts      int
	retryBackoff     time.Duration
	metrics          *metrics.LeadMetrics
	now              func() time.Time
}

// WorkerOption customizes worker behavior.
type WorkerOption func(*workerConfig)

// WithWorkerCount sets the number of concurrent consumer goroutines.
func WithWorkerCount(count int) WorkerOption {
	return func(cfg *workerConfig) {
		if count > 0 {
			cfg.workers = count
		}
	}
}

// WithReceiveWaitSeconds sets the long-poll wait duration.
func WithReceiveWaitSeconds(seconds int) WorkerOption {
	return func(cfg *workerConfig) {
		if seconds < 0 {
			return
		}
		cfg.receiveWaitSecs = min(seconds, maxWaitSeconds)
	}
}

// WithReceiveBatchSize sets how many messages to fetch per poll.
func WithReceiveBatchSize(size int) WorkerOption {
	return func(cfg *workerConfig) {
		if size > 0 {
			cfg.receiveBatchSize = min(size, maxReceiveBatchSize)
		}
	}
}

// WithMaxAttempts caps how many times one lead is tried before it is
// marked failed.
func WithMaxAttempts(n int) WorkerOption {
	return func(cfg *workerConfig) {
		if n > 0 {
			cfg.maxAttempts = n
		}
	}
}

// WithRetryBackoff sets the delay before the second attempt. Each later
// attempt waits twice as long as the one before. Zero retries at once.
func WithRetryBackoff(base time.Duration) WorkerOption {
	return func(cfg *workerConfig) {
		if base >= 0 {
			cfg.retryBackoff = base
		}
	}
}

// WithMetrics records export outcomes.
func WithMetrics(m *metrics.LeadMetrics) WorkerOption {
	return func(cfg *workerConfig) { cfg.metrics = m }
}

// WithClock overrides the export timestamp source.
func WithClock(now func() time.Time) WorkerOption {
	return func(cfg *workerConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// Worker drains the export queue into an Exporter.
type Worker struct {
	queue    Queue
	store    leadStore
	exporter Exporter
	logger   *logging.Logger
	cfg      workerConfig
	wg       sync.WaitGroup
}

func NewWorker(queue Queue, store leadStore, exporter Exporter, logger *logging.Logger, opts ...WorkerOption) *Worker {
	if queue == nil {
		panic("export: queue cannot be nil")
	}
	if store == nil {
		panic("export: lead store cannot be nil")
	}
	if exporter == nil {
		panic("export: exporter cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}

	cfg := workerConfig{
		workers:          defaultWorkerCount,
		receiveWaitSecs:  defaultWaitSeconds,
		receiveBatchSize: defaultBatchSize,
		maxAttempts:      defaultMaxAttempts,
		retryBackoff:     defaultRetryBackoff,
		now:              func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Worker{
		queue:    queue,
		store:    store,
		exporter: exporter,
		logger:   logger,
		cfg:      cfg,
	}
}

// Start launches worker goroutines until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.cfg.workers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i+1)
	}
}

// Wait blocks until all worker goroutines exit.
func (w *Worker) Wait() {
	w.wg.Wait()
}

// Run consumes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.Start(ctx)
	w.Wait()
}

func (w *Worker) run(ctx context.Context, workerID int) {
	defer w.wg.Done()
	w.logger.Debug("export worker started", "worker_id", workerID)

	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("export worker stopping", "worker_id", workerID)
			return
		default:
		}

		messages, err := w.queue.Receive(ctx, w.cfg.receiveBatchSize, w.cfg.receiveWaitSecs)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			w.logger.Error("failed to receive export jobs", "error", err, "worker_id", workerID)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 5*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		for _, msg := range messages {
			w.handleMessage(ctx, msg)
		}
		if len(messages) == 0 && w.cfg.receiveWaitSecs == 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(100 * time.Millisecond):
			}
		}
	}
}

// ProcessOnce handles one batch and reports how many messages it saw.
func (w *Worker) ProcessOnce(ctx context.Context) (int, error) {
	messages, err := w.queue.Receive(ctx, w.cfg.receiveBatchSize, 0)
	if err != nil {
		return 0, err
	}
	for _, msg := range messages {
		w.handleMessage(ctx, msg)
	}
	return len(messages), nil
}

func (w *Worker) handleMessage(ctx context.Context, msg queueMessage) {
	defer w.deleteMessage(context.WithoutCancel(ctx), msg.ReceiptHandle)

	job, err := decodeJob(msg.Body)
	if err != nil {
		w.logger.Error("dropping malformed export job", "error", err, "msg_id", msg.ID)
		return
	}

	ctx, span := exportTracer.Start(ctx, "export.job")
	defer span.End()
	span.SetAttributes(
		attribute.String("asbestos.export.job_id", job.ID),
		attribute.String("asbestos.lead.id", job.LeadID),
		attribute.Int("asbestos.export.attempt", job.Attempt),
	)

	lead, err := w.store.GetByID(ctx, job.LeadID)
	if err != nil {
		span.RecordError(err)
		w.logger.Error("failed to load lead for export", "error", err, "lead_id", job.LeadID, "job_id", job.ID)
		if !errors.Is(err, leads.ErrLeadNotFound) {
			w.retryOrFail(ctx, job)
		}
		return
	}
	if lead.ExportStatus == leads.ExportExported {
		w.logger.Info("lead already exported", "lead_id", lead.ID, "job_id", job.ID)
		return
	}

	exportCtx, cancel := context.WithTimeout(ctx, exportTimeout)
	err = w.exporter.Export(exportCtx, lead)
	cancel()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		w.logger.Error("lead export failed", "error", err, "lead_id", lead.ID, "job_id", job.ID, "attempt", job.Attempt)
		w.retryOrFail(ctx, job)
		return
	}

	if err := w.store.UpdateExportStatus(ctx, lead.ID, leads.ExportExported, w.cfg.now()); err != nil {
		w.logger.Error("failed to record export", "error", err, "lead_id", lead.ID)
	}
	w.cfg.metrics.ObserveExport("exported")
	w.logger.Info("lead exported", "lead_id", lead.ID, "tier", lead.QualificationLevel, "attempt", job.Attempt)
}

func (w *Worker) retryOrFail(ctx context.Context, job Job) {
	if job.Attempt < w.cfg.maxAttempts {
		next := Job{LeadID: job.LeadID, Level: job.Level, Attempt: job.Attempt + 1}
		_, body, err := encodeJob(next)
		if err == nil {
			err = w.queue.Send(ctx, body, w.retryDelay(job.Attempt))
		}
		if err == nil {
			w.cfg.metrics.ObserveExport("retried")
			return
		}
		w.logger.Error("failed to re-enqueue export job", "error", err, "lead_id", job.LeadID)
	}

	w.cfg.metrics.ObserveExport("failed")
	if err := w.store.UpdateExportStatus(ctx, job.LeadID, leads.ExportFailed, w.cfg.now()); err != nil {
		w.logger.Error("failed to record export failure", "error", err, "lead_id", job.LeadID)
	}
}

// retryDelay is the wait after the given failed attempt.
func (w *Worker) retryDelay(attempt int) time.Duration {
	delay := w.cfg.retryBackoff
	for i := 1; i < attempt && delay < maxRetryBackoff; i++ {
		delay *= 2
	}
	return min(delay, maxRetryBackoff)
}

func (w *Worker) deleteMessage(ctx context.Context, receiptHandle string) {
	if receiptHandle == "" {
		return
	}

	deleteCtx, cancel := context.WithTimeout(ctx, deleteTimeoutSeconds*time.Second)
	defer cancel()

	if err := w.queue.Delete(deleteCtx, receiptHandle); err != nil {
		w.logger.Error("failed to delete export job", "error", err)
	}
}
