package mocks

import (
	"context"
	"sync"

	"github.com/you/elearnauth/domain"
)

// SentMail is a message captured by MockMailSender
type SentMail struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

// MockMailSender implements domain.MailSender and records every message
type MockMailSender struct {
	SendFunc func(ctx context.Context, to, subject, template string, data map[string]any) error

	mu   sync.Mutex
	sent []SentMail
}

// NewMockMailSender creates a new MockMailSender with default behaviors
func NewMockMailSender() *MockMailSender {
	return &MockMailSender{}
}

// Send records the message
func (m *MockMailSender) Send(ctx context.Context, to, subject, template string, data map[string]any) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, template, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Template: template, Data: data})
	return nil
}

// Sent returns the captured messages
func (m *MockMailSender) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.sent...)
}

// Last returns the most recent message, if any
func (m *MockMailSender) Last() (SentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return SentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

// Compile-time interface compliance verification
var _ domain.MailSender = (*MockMailSender)(nil)
