package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Queue is the transport between the API and the export worker.
type Queue interface {
	// Send enqueues body, hiding it from consumers for delay.
	Send(ctx context.Context, body string, delay time.Duration) error
	Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]queueMessage, error)
	Delete(ctx context.Context, receiptHandle string) error
}

type queueMessage struct {
	ID            string
	Body          string
	ReceiptHandle string
}

// Job asks the worker to copy one stored lead into the spreadsheet.
type Job struct {
	ID      string `json:"id"`
	LeadID  string `json:"lead_id"`
	Level   string `json:"level"`
	Attempt int    `json:"attempt"`
}

func encodeJob(job Job) (Job, string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Attempt <= 0 {
		job.Attempt = 1
	}

	body, err := json.Marshal(job)
	if err != nil {
		return Job{}, "", fmt.Errorf("export: failed to encode job: %w", err)
	}
	return job, string(body), nil
}

func decodeJob(body string) (Job, error) {
	var job Job
	if err := json.Unmarshal([]byte(body), &job); err != nil {
		return Job{}, fmt.Errorf("export: failed to decode job: %w", err)
	}
	if job.LeadID == "" {
		return Job{}, fmt.Errorf("export: job %q has no lead id", job.ID)
	}
	return job, nil
}
