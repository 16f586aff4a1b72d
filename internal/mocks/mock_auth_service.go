package mocks

import (
	"context"

	"github.com/you/elearnauth/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc    func(ctx context.Context, name, email, password string) (*domain.RegistrationResult, error)
	ActivateFunc    func(ctx context.Context, activationToken, code string) error
	LoginFunc       func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	SocialLoginFunc func(ctx context.Context, email, name, avatar string) (*domain.AuthResult, error)
	RefreshFunc     func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc      func(ctx context.Context, accountID string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new account
func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*domain.RegistrationResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &domain.RegistrationResult{Email: email, ActivationToken: "activation_token"}, nil
}

// Activate activates an account
func (m *MockAuthService) Activate(ctx context.Context, activationToken, code string) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, activationToken, code)
	}
	return nil
}

// Login authenticates with email and password
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return NewAuthResult("acc-1", email), nil
}

// SocialLogin authenticates a social identity
func (m *MockAuthService) SocialLogin(ctx context.Context, email, name, avatar string) (*domain.AuthResult, error) {
	if m.SocialLoginFunc != nil {
		return m.SocialLoginFunc(ctx, email, name, avatar)
	}
	return NewAuthResult("acc-1", email), nil
}

// Refresh rotates a token pair
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return NewAuthResult("acc-1", "user@example.com"), nil
}

// Logout ends a session
func (m *MockAuthService) Logout(ctx context.Context, accountID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, accountID)
	}
	return nil
}

// NewAuthResult builds a result carrying mock tokens for the account
func NewAuthResult(accountID, email string) *domain.AuthResult {
	tokens := NewMockTokenService()
	return &domain.AuthResult{
		Principal: &domain.Principal{
			SchemaVersion: domain.PrincipalSchemaVersion,
			ID:            accountID,
			Name:          "Test User",
			Email:         email,
			Role:          domain.RoleUser,
			IsVerified:    true,
		},
		AccessToken:  "access_token_" + accountID,
		RefreshToken: "refresh_token_" + accountID,
		AccessTTL:    tokens.AccessTTL(),
		RefreshTTL:   tokens.RefreshTTL(),
	}
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
