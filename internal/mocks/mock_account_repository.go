package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/you/elearnauth/domain"
)

// MockAccountRepository implements domain.AccountRepository for testing.
// Without overrides it behaves like an in-memory store.
type MockAccountRepository struct {
	CreateFunc       func(ctx context.Context, account *domain.Account) error
	FindByEmailFunc  func(ctx context.Context, email string) (*domain.Account, error)
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Account, error)
	UpdateFunc       func(ctx context.Context, account *domain.Account) error
	MarkVerifiedFunc func(ctx context.Context, id string) error
	ListFunc         func(ctx context.Context) ([]*domain.Account, error)
	DeleteFunc       func(ctx context.Context, id string) error

	mu       sync.Mutex
	accounts map[string]*domain.Account
	nextID   int
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores accounts directly (test helper)
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		copied := *a
		m.accounts[a.ID] = &copied
	}
}

// Count returns the number of stored accounts
func (m *MockAccountRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

// Create stores a new account
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, account.Email) {
			return domain.ErrUserAlreadyExists
		}
	}
	if account.ID == "" {
		m.nextID++
		account.ID = fmt.Sprintf("acc-%d", m.nextID)
	}
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

// FindByEmail finds an account by email
func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, email) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByID finds an account by id
func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *a
	return &copied, nil
}

// Update overwrites a stored account
func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

// MarkVerified sets the verified flag
func (m *MockAccountRepository) MarkVerified(ctx context.Context, id string) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	a.IsVerified = true
	return nil
}

// List returns all accounts
func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

// Delete removes an account
func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.accounts, id)
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
