package bootstrap

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wolfman30/asbestos-leads/internal/config"
	"github.com/wolfman30/asbestos-leads/internal/leads"
	"github.com/wolfman30/asbestos-leads/internal/notify"
	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

// BuildEmailSender picks SendGrid, then SES, then the logging stub.
func BuildEmailSender(cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) (notify.EmailSender, string) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.SendGridAPIKey) != "" {
		return notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger), "sendgrid"
	}
	if strings.TrimSpace(cfg.SESFromEmail) != "" && awsCfg != nil {
		return notify.NewSESSender(sesv2.NewFromConfig(*awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger), "ses"
	}
	return notify.NewStubEmailSender(logger), "stub"
}

// BuildLeadAlerter returns nil when LEAD_ALERT_EMAIL is empty.
func BuildLeadAlerter(cfg *appconfig.Config, sender notify.EmailSender, logger *logging.Logger) leads.Alerter {
	alerter := notify.NewLeadAlerter(sender, cfg.LeadAlertEmails, logger)
	if alerter == nil {
		return nil
	}
	return alerter
}
