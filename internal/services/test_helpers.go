package services

import (
	"testing"
	"time"

	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/logging"
	"github.com/you/elearnauth/internal/mocks"
)

// authDeps groups the collaborators of an AuthService under test
type authDeps struct {
	accounts   *mocks.MockAccountRepository
	sessions   *mocks.MockSessionRepository
	passwords  *mocks.MockPasswordService
	tokens     *mocks.MockTokenService
	activation *mocks.MockActivationService
	mailer     *mocks.MockMailSender
	audit      *mocks.MockAuditLogger
}

func newAuthDeps() *authDeps {
	return &authDeps{
		accounts:   mocks.NewMockAccountRepository(),
		sessions:   mocks.NewMockSessionRepository(),
		passwords:  mocks.NewMockPasswordService(),
		tokens:     mocks.NewMockTokenService(),
		activation: mocks.NewMockActivationService(),
		mailer:     mocks.NewMockMailSender(),
		audit:      mocks.NewMockAuditLogger(),
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T, deps *authDeps, cfg AuthConfig) domain.AuthService {
	t.Helper()
	return NewAuthService(
		deps.accounts,
		deps.sessions,
		deps.passwords,
		deps.tokens,
		deps.activation,
		deps.mailer,
		deps.audit,
		logging.NewNop(),
		cfg,
	)
}

// createVerifiedAccount creates a verified password account for testing
func createVerifiedAccount(t *testing.T) *domain.Account {
	t.Helper()
	return &domain.Account{
		ID:           "acc-1",
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleUser,
		IsVerified:   true,
		Courses:      []string{"go-101"},
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createSocialAccount creates a passwordless account for testing
func createSocialAccount(t *testing.T) *domain.Account {
	t.Helper()
	account := createVerifiedAccount(t)
	account.ID = "acc-social"
	account.Email = "social@example.com"
	account.PasswordHash = ""
	return account
}

func nopLogger() logging.Logger {
	return logging.NewNop()
}
