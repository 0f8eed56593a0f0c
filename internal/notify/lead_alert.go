package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfman30/asbestos-leads/internal/leads"
	"github.com/wolfman30/asbestos-leads/internal/qualification"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

const alertCategory = "lead-alert"

// LeadAlerter e-mails the intake team when a high-tier lead arrives.
type LeadAlerter struct {
	sender     EmailSender
	recipients []string
	logger     *logging.Logger
}

// NewLeadAlerter returns nil when there is no sender or no recipient, so
// callers can skip alerts by leaving LEAD_ALERT_EMAIL unset.
func NewLeadAlerter(sender EmailSender, recipients []string, logger *logging.Logger) *LeadAlerter {
	if sender == nil || len(recipients) == 0 {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadAlerter{sender: sender, recipients: recipients, logger: logger}
}

// NotifyQualified sends one alert per recipient. Leads below the high tier
// are ignored.
func (a *LeadAlerter) NotifyQualified(ctx context.Context, lead *leads.Lead) error {
	if a == nil || lead == nil || lead.QualificationLevel != qualification.LevelHigh {
		return nil
	}

	msg := EmailMessage{
		Subject:  fmt.Sprintf("[%s] New lead: %s (score %d)", strings.ToUpper(string(lead.QualificationLevel)), lead.Name, lead.QualityScore),
		Body:     alertBody(lead),
		Category: alertCategory,
	}
	if lead.ContactQuality.EmailValid {
		msg.ReplyTo = lead.Email
	}

	var failed []string
	for _, to := range a.recipients {
		msg.To = to
		if err := a.sender.Send(ctx, msg); err != nil {
			a.logger.Error("lead alert failed", "error", err, "lead_id", lead.ID, "to", to)
			failed = append(failed, to)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("notify: lead alert not delivered to %s", strings.Join(failed, ", "))
	}
	a.logger.Info("lead alert sent", "lead_id", lead.ID, "recipients", len(a.recipients))
	return nil
}

func alertBody(lead *leads.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %s-tier lead just came in (score %d).\n\n", lead.QualificationLevel, lead.QualityScore)

	phone := lead.PhoneE164
	if phone == "" {
		phone = lead.Phone
	}
	fmt.Fprintf(&b, "Name:      %s\n", lead.Name)
	fmt.Fprintf(&b, "Email:     %s\n", lead.Email)
	fmt.Fprintf(&b, "Phone:     %s\n", phone)
	fmt.Fprintf(&b, "Inquiry:   %s\n", lead.InquiryType)
	if lead.Diagnosis != "" {
		fmt.Fprintf(&b, "Diagnosis: %s\n", lead.Diagnosis)
	}
	if lead.FacilitySlug != "" || lead.State != "" {
		fmt.Fprintf(&b, "Facility:  %s %s\n", lead.FacilitySlug, lead.State)
	}

	b.WriteString("\nWhy it scored this way:\n")
	for _, reason := range lead.QualificationReasons {
		fmt.Fprintf(&b, "  - %s\n", reason)
	}

	if msg := strings.TrimSpace(lead.Message); msg != "" {
		fmt.Fprintf(&b, "\nMessage:\n%s\n", msg)
	}
	fmt.Fprintf(&b, "\nLead ID: %s\n", lead.ID)
	return b.String()
}

var _ leads.Alerter = (*LeadAlerter)(nil)
