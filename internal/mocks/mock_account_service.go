package mocks

import (
	"context"

	"github.com/you/elearnauth/domain"
)

// MockAccountService implements domain.AccountService for testing
type MockAccountService struct {
	ProfileFunc        func(ctx context.Context, principal *domain.Principal, fromStore bool) (*domain.Principal, error)
	UpdateNameFunc     func(ctx context.Context, accountID, name string) (*domain.Principal, error)
	UpdatePasswordFunc func(ctx context.Context, accountID, oldPassword, newPassword string) (*domain.Principal, error)
	UpdateAvatarFunc   func(ctx context.Context, accountID, avatarURL string) (*domain.Principal, error)
	UpdateRoleFunc     func(ctx context.Context, accountID, role string) (*domain.Account, error)
	ListFunc           func(ctx context.Context) ([]*domain.Account, error)
	DeleteFunc         func(ctx context.Context, accountID string) error
}

// NewMockAccountService creates a new MockAccountService with default behaviors
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

// Profile returns the principal unchanged by default
func (m *MockAccountService) Profile(ctx context.Context, principal *domain.Principal, fromStore bool) (*domain.Principal, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, principal, fromStore)
	}
	return principal, nil
}

// UpdateName renames an account
func (m *MockAccountService) UpdateName(ctx context.Context, accountID, name string) (*domain.Principal, error) {
	if m.UpdateNameFunc != nil {
		return m.UpdateNameFunc(ctx, accountID, name)
	}
	return &domain.Principal{ID: accountID, Name: name, Role: domain.RoleUser}, nil
}

// UpdatePassword changes a password
func (m *MockAccountService) UpdatePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*domain.Principal, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, accountID, oldPassword, newPassword)
	}
	return &domain.Principal{ID: accountID, Role: domain.RoleUser}, nil
}

// UpdateAvatar changes an avatar
func (m *MockAccountService) UpdateAvatar(ctx context.Context, accountID, avatarURL string) (*domain.Principal, error) {
	if m.UpdateAvatarFunc != nil {
		return m.UpdateAvatarFunc(ctx, accountID, avatarURL)
	}
	return &domain.Principal{ID: accountID, Avatar: avatarURL, Role: domain.RoleUser}, nil
}

// UpdateRole changes a role
func (m *MockAccountService) UpdateRole(ctx context.Context, accountID, role string) (*domain.Account, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, accountID, role)
	}
	return &domain.Account{ID: accountID, Role: role}, nil
}

// List returns all accounts
func (m *MockAccountService) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.Account{}, nil
}

// Delete removes an account
func (m *MockAccountService) Delete(ctx context.Context, accountID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, accountID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccountService = (*MockAccountService)(nil)
