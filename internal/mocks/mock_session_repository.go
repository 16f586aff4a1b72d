package mocks

import (
	"context"
	"sync"

	"github.com/you/elearnauth/domain"
)

// MockSessionRepository implements domain.SessionRepository interface for testing.
// Without overrides it keeps principals in memory.
type MockSessionRepository struct {
	SaveFunc    func(ctx context.Context, principal *domain.Principal) error
	FindFunc    func(ctx context.Context, accountID string) (*domain.Principal, error)
	ReplaceFunc func(ctx context.Context, principal *domain.Principal) (bool, error)
	DeleteFunc  func(ctx context.Context, accountID string) error

	mu       sync.Mutex
	sessions map[string]domain.Principal
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]domain.Principal)}
}

// Has reports whether a session is stored for the account
func (m *MockSessionRepository) Has(accountID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[accountID]
	return ok
}

// Save stores a principal
func (m *MockSessionRepository) Save(ctx context.Context, principal *domain.Principal) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, principal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[principal.ID] = *principal
	return nil
}

// Find returns the principal for an account
func (m *MockSessionRepository) Find(ctx context.Context, accountID string) (*domain.Principal, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.sessions[accountID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &p, nil
}

// Replace overwrites a principal only when one is stored
func (m *MockSessionRepository) Replace(ctx context.Context, principal *domain.Principal) (bool, error) {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, principal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[principal.ID]; !ok {
		return false, nil
	}
	m.sessions[principal.ID] = *principal
	return true, nil
}

// Delete removes a principal
func (m *MockSessionRepository) Delete(ctx context.Context, accountID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, accountID)
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
