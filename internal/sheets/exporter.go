// Package sheets appends qualified leads to a Google Sheets workbook, one row
// per lead, routed to a tab by tier.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/wolfman30/asbestos-leads/internal/leads"
	"github.com/wolfman30/asbestos-leads/internal/qualification"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

// Tab names in the lead workbook.
const (
	TabQualified   = "Qualified Leads"
	TabLowPriority = "Low Priority"
	TabRejected    = "Rejected"
)

// Header is the column order of every tab.
var Header = []string{
	"Received At", "Lead ID", "Tier", "Score", "Name", "Email", "Phone",
	"Inquiry Type", "Diagnosis", "Pathology Report", "Diagnosis Timeline",
	"Facility", "State", "City", "Page URL", "Source", "Message", "Reasons",
}

// TabFor routes a tier to its tab.
func TabFor(level qualification.Level) string {
	switch level {
	case qualification.LevelHigh, qualification.LevelMedium:
		return TabQualified
	case qualification.LevelLow:
		return TabLowPriority
	default:
		return TabRejected
	}
}

// Row renders a lead in Header order.
func Row(lead *leads.Lead) []any {
	phone := lead.PhoneE164
	if phone == "" {
		phone = lead.Phone
	}
	facility := lead.FacilitySlug
	if facility == "" {
		facility = lead.FacilityID
	}
	return []any{
		lead.CreatedAt.UTC().Format(time.RFC3339),
		lead.ID,
		string(lead.QualificationLevel),
		strconv.Itoa(lead.QualityScore),
		lead.Name,
		lead.Email,
		phone,
		lead.InquiryType,
		lead.Diagnosis,
		lead.PathologyReport,
		lead.DiagnosisTimeline,
		facility,
		lead.State,
		lead.City,
		lead.PageURL,
		lead.Source,
		lead.Message,
		strings.Join(lead.QualificationReasons, "; "),
	}
}

// GoogleSheetsExporter writes leads through the Sheets v4 API.
type GoogleSheetsExporter struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *logging.Logger
}

// NewGoogleSheetsExporter builds a Sheets client. Pass
// option.WithCredentialsFile for a service account, or option.WithHTTPClient
// with an already-authorised client.
func NewGoogleSheetsExporter(ctx context.Context, spreadsheetID string, logger *logging.Logger, opts ...option.ClientOption) (*GoogleSheetsExporter, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &GoogleSheetsExporter{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// Export appends the lead as a new row on its tier's tab. Values are sent
// RAW so submitted text is never evaluated as a formula.
func (e *GoogleSheetsExporter) Export(ctx context.Context, lead *leads.Lead) error {
	tab := TabFor(lead.QualificationLevel)
	rng := fmt.Sprintf("'%s'!A1", tab)

	resp, err := e.service.Spreadsheets.Values.
		Append(e.spreadsheetID, rng, &sheets.ValueRange{Values: [][]any{Row(lead)}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append lead %s: %w", lead.ID, err)
	}

	updated := ""
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRange
	}
	e.logger.Debug("lead appended to sheet", "lead_id", lead.ID, "tab", tab, "range", updated)
	return nil
}

// StubExporter logs exports instead of calling Google, for local runs.
type StubExporter struct {
	logger *logging.Logger
}

func NewStubExporter(logger *logging.Logger) *StubExporter {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubExporter{logger: logger}
}

func (s *StubExporter) Export(ctx context.Context, lead *leads.Lead) error {
	s.logger.Info("stub sheets export", "lead_id", lead.ID, "tab", TabFor(lead.QualificationLevel), "score", lead.QualityScore)
	return nil
}
