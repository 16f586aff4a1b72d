package notifications

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"github.com/you/elearnauth/domain"
)

// SMTPConfig holds the outbound mail server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements domain.MailSender over SMTP
type SMTPMailer struct {
	cfg       SMTPConfig
	templates *Templates
}

// NewSMTPMailer creates a new SMTP mail sender
func NewSMTPMailer(cfg SMTPConfig, templates *Templates) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg, templates: templates}
}

// Send implements domain.MailSender
func (m *SMTPMailer) Send(ctx context.Context, to, subject, template string, data map[string]any) error {
	msg, err := m.buildMessage(to, subject, template, data)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("%w: failed to create mail client: %w", domain.ErrDeliveryFailed, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, template string, data map[string]any) (*mail.Msg, error) {
	tpl, err := m.templates.Lookup(template)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("%w: invalid sender: %w", domain.ErrDeliveryFailed, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient: %w", domain.ErrDeliveryFailed, err)
	}
	msg.Subject(subject)
	if err := msg.SetBodyHTMLTemplate(tpl, data); err != nil {
		return nil, fmt.Errorf("%w: render %s: %w", domain.ErrDeliveryFailed, template, err)
	}
	return msg, nil
}

var _ domain.MailSender = (*SMTPMailer)(nil)
