package mocks

import (
	"context"

	"github.com/you/elearnauth/domain"
)

// MockAuthorizationGate implements domain.AuthorizationGate for testing
type MockAuthorizationGate struct {
	AuthenticateFunc func(ctx context.Context, accessToken string) (*domain.Principal, error)
	AuthorizeFunc    func(principal *domain.Principal, allowedRoles ...string) error
}

// NewMockAuthorizationGate creates a new MockAuthorizationGate with default behaviors
func NewMockAuthorizationGate() *MockAuthorizationGate {
	return &MockAuthorizationGate{}
}

// Authenticate resolves a principal. By default "access_token_<id>" resolves to a user <id>.
func (m *MockAuthorizationGate) Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, accessToken)
	}
	claims, err := NewMockTokenService().ValidateAccessToken(accessToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Principal{
		SchemaVersion: domain.PrincipalSchemaVersion,
		ID:            claims.AccountID,
		Email:         claims.AccountID + "@example.com",
		Role:          domain.RoleUser,
	}, nil
}

// Authorize checks roles
func (m *MockAuthorizationGate) Authorize(principal *domain.Principal, allowedRoles ...string) error {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(principal, allowedRoles...)
	}
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	if len(allowedRoles) == 0 {
		return nil
	}
	for _, r := range allowedRoles {
		if r == principal.Role {
			return nil
		}
	}
	return domain.ErrForbidden
}

// Compile-time interface compliance verification
var _ domain.AuthorizationGate = (*MockAuthorizationGate)(nil)
