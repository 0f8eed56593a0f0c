package export

import (
	"context"
	"fmt"

	"github.com/wolfman30/asbestos-leads/internal/leads"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

// Publisher enqueues export jobs for asynchronous processing.
type Publisher struct {
	queue  Queue
	logger *logging.Logger
}

// NewPublisher creates a queue-backed publisher.
func NewPublisher(queue Queue, logger *logging.Logger) *Publisher {
	if queue == nil {
		panic("export: queue cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{
		queue:  queue,
		logger: logger,
	}
}

// Enqueue publishes a first-attempt export job for a stored lead.
func (p *Publisher) Enqueue(ctx context.Context, lead *leads.Lead) error {
	if lead == nil || lead.ID == "" {
		return fmt.Errorf("export: lead must be stored before export")
	}
	return p.send(ctx, Job{LeadID: lead.ID, Level: string(lead.QualificationLevel), Attempt: 1})
}

func (p *Publisher) send(ctx context.Context, job Job) error {
	job, body, err := encodeJob(job)
	if err != nil {
		return err
	}

	if err := p.queue.Send(ctx, body, 0); err != nil {
		return fmt.Errorf("export: failed to enqueue job: %w", err)
	}

	p.logger.Debug("export job enqueued", "job_id", job.ID, "lead_id", job.LeadID, "attempt", job.Attempt)
	return nil
}

var _ leads.ExportPublisher = (*Publisher)(nil)
