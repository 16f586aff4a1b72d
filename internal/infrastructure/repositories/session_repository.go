package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/you/elearnauth/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository on top of a SessionCache.
// Entries are keyed by account id and live as long as a refresh token.
type SessionRepositoryImpl struct {
	cache domain.SessionCache
	ttl   time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(cache domain.SessionCache, ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{
		cache: cache,
		ttl:   ttl,
	}
}

// Save implements domain.SessionRepository
func (r *SessionRepositoryImpl) Save(ctx context.Context, principal *domain.Principal) error {
	data, err := encodePrincipal(principal)
	if err != nil {
		return err
	}
	if err := r.cache.Set(ctx, r.key(principal.ID), data, r.ttl); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSessionUnavailable, err)
	}
	return nil
}

// Find implements domain.SessionRepository
func (r *SessionRepositoryImpl) Find(ctx context.Context, accountID string) (*domain.Principal, error) {
	data, err := r.cache.Get(ctx, r.key(accountID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionUnavailable, err)
	}

	principal, err := decodePrincipal(data)
	if err != nil {
		// unreadable entries are treated as absent
		return nil, domain.ErrSessionNotFound
	}
	if principal.ID != accountID {
		return nil, domain.ErrSessionNotFound
	}
	return principal, nil
}

// Replace implements domain.SessionRepository
func (r *SessionRepositoryImpl) Replace(ctx context.Context, principal *domain.Principal) (bool, error) {
	data, err := encodePrincipal(principal)
	if err != nil {
		return false, err
	}
	replaced, err := r.cache.SetIfExists(ctx, r.key(principal.ID), data, r.ttl)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrSessionUnavailable, err)
	}
	return replaced, nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, accountID string) error {
	if err := r.cache.Delete(ctx, r.key(accountID)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSessionUnavailable, err)
	}
	return nil
}

func (r *SessionRepositoryImpl) key(accountID string) string {
	return accountID
}

func encodePrincipal(p *domain.Principal) ([]byte, error) {
	if p == nil || p.ID == "" {
		return nil, fmt.Errorf("%w: principal without id", domain.ErrValidation)
	}
	stored := *p
	stored.SchemaVersion = domain.PrincipalSchemaVersion
	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal principal: %w", err)
	}
	return data, nil
}

func decodePrincipal(data []byte) (*domain.Principal, error) {
	var p domain.Principal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal principal: %w", err)
	}
	if p.SchemaVersion == 0 {
		p.SchemaVersion = 1
	}
	if p.SchemaVersion > domain.PrincipalSchemaVersion {
		return nil, fmt.Errorf("%w: version %d", domain.ErrPrincipalSchema, p.SchemaVersion)
	}
	return &p, nil
}
