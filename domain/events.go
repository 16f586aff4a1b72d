package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"
	UserActivationEvent   AuditEventType = "USER_ACTIVATED"
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	TokenRefreshEvent     AuditEventType = "TOKEN_REFRESHED"
	AccessDeniedEvent     AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a security relevant event
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	AccountID string                 `json:"account_id,omitempty"`
	Email     string                 `json:"email,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, accountID string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		AccountID: accountID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError marks the event as failed
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
