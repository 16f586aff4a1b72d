package notifications

import (
	"context"

	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/logging"
)

// LogMailer renders mail and writes it to the log instead of sending it.
// Used when no SMTP host is configured.
type LogMailer struct {
	log       logging.Logger
	templates *Templates
}

// NewLogMailer creates a log-only mail sender
func NewLogMailer(log logging.Logger, templates *Templates) *LogMailer {
	return &LogMailer{log: log.With("component", "mailer"), templates: templates}
}

// Send implements domain.MailSender
func (m *LogMailer) Send(ctx context.Context, to, subject, template string, data map[string]any) error {
	body, err := m.templates.Render(template, data)
	if err != nil {
		return err
	}
	m.log.Info(ctx, "mail not sent, smtp disabled",
		"to", to,
		"subject", subject,
		"template", template,
		"bytes", len(body),
	)
	return nil
}

var _ domain.MailSender = (*LogMailer)(nil)
