package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/asbestos-leads/internal/observability/metrics"
	"github.com/wolfman30/asbestos-leads/internal/qualification"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

var leadsTracer = otel.Tracer("asbestos.internal.leads")

// ExportPublisher hands a stored lead to the sheets export pipeline.
type ExportPublisher interface {
	Enqueue(ctx context.Context, lead *Lead) error
}

// Alerter notifies staff about leads worth an immediate call.
type Alerter interface {
	NotifyQualified(ctx context.Context, lead *Lead) error
}

// Service runs contact submissions through qualification, storage, export
// and staff alerts, in that order.
type Service struct {
	repo      Repository
	publisher ExportPublisher
	alerter   Alerter
	metrics   *metrics.LeadMetrics
	logger    *logging.Logger
	now       func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithPublisher enables export of every stored lead.
func WithPublisher(p ExportPublisher) ServiceOption {
	return func(s *Service) { s.publisher = p }
}

// WithAlerter enables staff alerts for high-tier leads.
func WithAlerter(a Alerter) ServiceOption {
	return func(s *Service) { s.alerter = a }
}

// WithMetrics records intake metrics.
func WithMetrics(m *metrics.LeadMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the intake flow around a repository.
func NewService(repo Repository, logger *logging.Logger, opts ...ServiceOption) *Service {
	if repo == nil {
		panic("leads: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit qualifies the request, stores the lead and fans it out. Only
// validation and storage failures are returned; export and alert problems
// are logged and reflected in the lead's ExportStatus.
func (s *Service) Submit(ctx context.Context, req *ContactRequest) (*Lead, error) {
	ctx, span := leadsTracer.Start(ctx, "leads.submit")
	defer span.End()
	started := s.now()

	if err := req.Validate(); err != nil {
		s.metrics.ObserveInvalidRequest("validation")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	result := qualification.QualifyLead(req.Submission())
	span.SetAttributes(
		attribute.String("asbestos.lead.level", string(result.QualificationLevel)),
		attribute.Int("asbestos.lead.score", result.QualityScore),
		attribute.String("asbestos.lead.inquiry_type", req.InquiryType),
	)

	draft := newLead(req, result)
	draft.CreatedAt = s.now()
	if s.publisher == nil {
		draft.ExportStatus = ExportSkipped
	} else {
		draft.ExportStatus = ExportPending
	}

	lead, err := s.repo.Create(ctx, draft)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return nil, fmt.Errorf("leads: submit: %w", err)
	}
	span.SetAttributes(attribute.String("asbestos.lead.id", lead.ID))
	s.metrics.ObserveQualified(string(lead.QualificationLevel), lead.QualityScore)
	s.logger.Info("lead qualified",
		"lead_id", lead.ID,
		"tier", lead.QualificationLevel,
		"score", lead.QualityScore,
		"inquiry_type", lead.InquiryType,
		"source", lead.Source,
	)

	s.publish(ctx, lead)
	s.alert(ctx, lead)

	s.metrics.ObserveSubmitLatency(s.now().Sub(started).Seconds())
	return lead, nil
}

func (s *Service) publish(ctx context.Context, lead *Lead) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Enqueue(ctx, lead)
	if err == nil {
		return
	}

	s.metrics.ObserveExport("enqueue_failed")
	s.logger.Error("failed to enqueue lead export", "error", err, "lead_id", lead.ID)
	lead.ExportStatus = ExportFailed
	if uerr := s.repo.UpdateExportStatus(ctx, lead.ID, ExportFailed, s.now()); uerr != nil {
		s.logger.Error("failed to record export failure", "error", uerr, "lead_id", lead.ID)
	}
}

func (s *Service) alert(ctx context.Context, lead *Lead) {
	if s.alerter == nil || lead.QualificationLevel != qualification.LevelHigh {
		return
	}
	if err := s.alerter.NotifyQualified(ctx, lead); err != nil {
		s.logger.Error("failed to send lead alert", "error", err, "lead_id", lead.ID)
	}
}

// Preview scores a request without storing it.
func (s *Service) Preview(ctx context.Context, req *ContactRequest) (qualification.Result, error) {
	_, span := leadsTracer.Start(ctx, "leads.preview")
	defer span.End()

	if err := req.Validate(); err != nil {
		return qualification.Result{}, err
	}
	return qualification.QualifyLead(req.Submission()), nil
}

// Get returns one stored lead.
func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, ErrLeadNotFound) {
		return nil, fmt.Errorf("leads: get: %w", err)
	}
	return lead, err
}

// List returns stored leads for the admin views.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	if filter.Level != "" && !filter.Level.Valid() {
		return nil, &ValidationError{Fields: []string{"level"}}
	}
	leads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("leads: list: %w", err)
	}
	return leads, nil
}
