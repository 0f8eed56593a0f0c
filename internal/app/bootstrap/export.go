package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"google.golang.org/api/option"

	appconfig "github.com/wolfman30/asbestos-leads/internal/config"
	"github.com/wolfman30/asbestos-leads/internal/export"
	"github.com/wolfman30/asbestos-leads/internal/sheets"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

const memoryQueueBuffer = 256

// BuildExportQueue returns the in-process queue when USE_MEMORY_QUEUE is set,
// otherwise an SQS queue. The memory queue is also returned so the caller
// can run an inline worker against it.
func BuildExportQueue(cfg *appconfig.Config, awsCfg *aws.Config) (export.Queue, *export.MemoryQueue, error) {
	if cfg.UseMemoryQueue {
		q := export.NewMemoryQueue(memoryQueueBuffer)
		return q, q, nil
	}
	if strings.TrimSpace(cfg.ExportQueueURL) == "" {
		return nil, nil, fmt.Errorf("bootstrap: EXPORT_QUEUE_URL is required for the sqs queue")
	}
	if awsCfg == nil {
		return nil, nil, fmt.Errorf("bootstrap: aws config is required for the sqs queue")
	}
	return export.NewSQSQueue(sqs.NewFromConfig(*awsCfg), cfg.ExportQueueURL), nil, nil
}

// BuildExporter connects to Google Sheets when a spreadsheet is configured and
// otherwise logs rows through the stub.
func BuildExporter(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, opts ...option.ClientOption) (export.Exporter, error) {
	if logger == nil {
		logger = logging.Default()
	}
	spreadsheetID := strings.TrimSpace(cfg.GoogleSheetsSpreadsheetID)
	if spreadsheetID == "" {
		logger.Warn("GOOGLE_SHEETS_SPREADSHEET_ID not set; exported leads are only logged")
		return sheets.NewStubExporter(logger), nil
	}
	if file := strings.TrimSpace(cfg.GoogleSheetsCredentialsFile); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}
	exporter, err := sheets.NewGoogleSheetsExporter(ctx, spreadsheetID, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: sheets exporter: %w", err)
	}
	return exporter, nil
}

// ExportWorkerOptions maps configuration onto worker options.
func ExportWorkerOptions(cfg *appconfig.Config) []export.WorkerOption {
	return []export.WorkerOption{
		export.WithWorkerCount(cfg.ExportWorkerCount),
		export.WithMaxAttempts(cfg.ExportMaxAttempts),
		export.WithRetryBackoff(cfg.ExportRetryDelay),
	}
}
