package mocks

import (
	"strings"
	"time"

	"github.com/you/elearnauth/domain"
)

// MockActivationService implements domain.ActivationService for testing.
// Default tickets are "ticket:<email>:<code>" with code "1234".
type MockActivationService struct {
	IssueFunc  func(email string) (*domain.ActivationTicket, error)
	VerifyFunc func(token, code string) (string, error)
	Code       string
}

// NewMockActivationService creates a new MockActivationService with default behaviors
func NewMockActivationService() *MockActivationService {
	return &MockActivationService{Code: "1234"}
}

// Issue issues an activation ticket
func (m *MockActivationService) Issue(email string) (*domain.ActivationTicket, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(email)
	}
	return &domain.ActivationTicket{
		Token:     "ticket:" + email + ":" + m.Code,
		Code:      m.Code,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// Verify checks a ticket and code
func (m *MockActivationService) Verify(token, code string) (string, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token, code)
	}
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "ticket" {
		return "", domain.ErrTokenInvalid
	}
	if parts[2] != code {
		return "", domain.ErrInvalidActivationCode
	}
	return parts[1], nil
}

// Compile-time interface compliance verification
var _ domain.ActivationService = (*MockActivationService)(nil)
