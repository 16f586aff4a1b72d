package services

import (
	"context"
	"fmt"

	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/logging"
)

// AccountServiceImpl implements domain.AccountService.
// Every mutation rewrites the cached principal if the account has a live session.
type AccountServiceImpl struct {
	accounts    domain.AccountRepository
	sessions    domain.SessionRepository
	passwordSvc domain.PasswordService
	log         logging.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	accounts domain.AccountRepository,
	sessions domain.SessionRepository,
	passwordSvc domain.PasswordService,
	log logging.Logger,
) domain.AccountService {
	return &AccountServiceImpl{
		accounts:    accounts,
		sessions:    sessions,
		passwordSvc: passwordSvc,
		log:         log.With("component", "accounts"),
	}
}

// Profile implements domain.AccountService
func (s *AccountServiceImpl) Profile(ctx context.Context, principal *domain.Principal, fromStore bool) (*domain.Principal, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !fromStore {
		return principal, nil
	}
	account, err := s.accounts.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	return domain.NewPrincipal(account), nil
}

// UpdateName implements domain.AccountService
func (s *AccountServiceImpl) UpdateName(ctx context.Context, accountID, name string) (*domain.Principal, error) {
	if err := checkField("name", name, nameRules); err != nil {
		return nil, err
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Name = name
	return s.save(ctx, account)
}

// UpdatePassword implements domain.AccountService
func (s *AccountServiceImpl) UpdatePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*domain.Principal, error) {
	if oldPassword == "" {
		return nil, fmt.Errorf("%w: old password is required", domain.ErrValidation)
	}
	if err := checkField("new password", newPassword, passwordRules); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.HasPassword() || !s.passwordSvc.Verify(account.PasswordHash, oldPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = hashed
	return s.save(ctx, account)
}

// UpdateAvatar implements domain.AccountService
func (s *AccountServiceImpl) UpdateAvatar(ctx context.Context, accountID, avatarURL string) (*domain.Principal, error) {
	if err := checkField("avatar", avatarURL, avatarRules); err != nil {
		return nil, err
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.AvatarURL = avatarURL
	return s.save(ctx, account)
}

// UpdateRole implements domain.AccountService. A logged-out account stays logged out.
func (s *AccountServiceImpl) UpdateRole(ctx context.Context, accountID, role string) (*domain.Account, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be one of %s, %s", domain.ErrValidation, domain.RoleUser, domain.RoleAdmin)
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Role = role
	if _, err := s.save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// List implements domain.AccountService
func (s *AccountServiceImpl) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.List(ctx)
}

// Delete implements domain.AccountService
func (s *AccountServiceImpl) Delete(ctx context.Context, accountID string) error {
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, accountID)
}

// save persists the account and rewrites its cached principal when one exists
func (s *AccountServiceImpl) save(ctx context.Context, account *domain.Account) (*domain.Principal, error) {
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	principal := domain.NewPrincipal(account)
	replaced, err := s.sessions.Replace(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !replaced {
		s.log.Info(ctx, "account updated without live session", "account_id", account.ID)
	}
	return principal, nil
}
