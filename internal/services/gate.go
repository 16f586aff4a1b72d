package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/elearnauth/domain"
)

// GateImpl implements domain.AuthorizationGate. The session cache, not the token
// signature, decides whether a caller is logged in.
type GateImpl struct {
	tokenSvc domain.TokenService
	sessions domain.SessionRepository
}

// NewAuthorizationGate creates a new authorization gate
func NewAuthorizationGate(tokenSvc domain.TokenService, sessions domain.SessionRepository) domain.AuthorizationGate {
	return &GateImpl{tokenSvc: tokenSvc, sessions: sessions}
}

// Authenticate implements domain.AuthorizationGate
func (g *GateImpl) Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := g.tokenSvc.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	principal, err := g.sessions.Find(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrSessionNotFound, domain.ErrUnauthenticated)
		}
		return nil, err
	}
	return principal, nil
}

// Authorize implements domain.AuthorizationGate. An empty allow-list admits any principal.
func (g *GateImpl) Authorize(principal *domain.Principal, allowedRoles ...string) error {
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	if len(allowedRoles) == 0 {
		return nil
	}
	for _, role := range allowedRoles {
		if principal.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s is not allowed to access this resource", domain.ErrForbidden, principal.Role)
}
