package mocks

import (
	"strings"
	"time"

	"github.com/you/elearnauth/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens are "access_token_<id>" and "refresh_token_<id>".
type MockTokenService struct {
	GenerateAccessTokenFunc  func(accountID string) (string, error)
	GenerateRefreshTokenFunc func(accountID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
	AccessDuration           time.Duration
	RefreshDuration          time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{
		AccessDuration:  24 * time.Hour,
		RefreshDuration: 72 * time.Hour,
	}
}

// GenerateAccessToken generates an access token for the account
func (m *MockTokenService) GenerateAccessToken(accountID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(accountID)
	}
	return "access_token_" + accountID, nil
}

// GenerateRefreshToken generates a refresh token for the account
func (m *MockTokenService) GenerateRefreshToken(accountID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(accountID)
	}
	return "refresh_token_" + accountID, nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return m.parse(token, "access_token_", domain.AccessToken, m.AccessDuration)
}

// ValidateRefreshToken validates a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return m.parse(token, "refresh_token_", domain.RefreshToken, m.RefreshDuration)
}

// AccessTTL returns the access token lifetime
func (m *MockTokenService) AccessTTL() time.Duration { return m.AccessDuration }

// RefreshTTL returns the refresh token lifetime
func (m *MockTokenService) RefreshTTL() time.Duration { return m.RefreshDuration }

func (m *MockTokenService) parse(token, prefix string, kind domain.TokenKind, ttl time.Duration) (*domain.TokenClaims, error) {
	id, ok := strings.CutPrefix(token, prefix)
	if !ok || id == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now()
	return &domain.TokenClaims{
		AccountID: id,
		Kind:      kind,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
