package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/mocks"
)

// Example showing the in-memory defaults and how a Func field overrides them
func TestMockUsageExample(t *testing.T) {
	ctx := context.Background()

	accounts := mocks.NewMockAccountRepository()
	account := &domain.Account{Email: "user@example.com", PasswordHash: "hashed_password123"}
	require.NoError(t, accounts.Create(ctx, account))
	assert.NotEmpty(t, account.ID)
	assert.ErrorIs(t, accounts.Create(ctx, &domain.Account{Email: "USER@example.com"}), domain.ErrUserAlreadyExists)

	found, err := accounts.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, mocks.NewMockPasswordService().Verify(found.PasswordHash, "password123"))

	accounts.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return nil, errors.New("database down")
	}
	_, err = accounts.FindByEmail(ctx, "user@example.com")
	assert.EqualError(t, err, "database down")
}

func TestMockSessionRepository_Replace(t *testing.T) {
	ctx := context.Background()
	sessions := mocks.NewMockSessionRepository()
	p := &domain.Principal{ID: "acc-1", Role: domain.RoleUser}

	replaced, err := sessions.Replace(ctx, p)
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.False(t, sessions.Has("acc-1"))

	require.NoError(t, sessions.Save(ctx, p))
	replaced, err = sessions.Replace(ctx, &domain.Principal{ID: "acc-1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, replaced)

	stored, err := sessions.Find(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
}

func TestMockTokenService_Defaults(t *testing.T) {
	tokens := mocks.NewMockTokenService()

	access, err := tokens.GenerateAccessToken("acc-1")
	require.NoError(t, err)
	claims, err := tokens.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)

	_, err = tokens.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestMockCasbinEnforcer_Enforce(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.SetPolicies([][]string{{"admin", "/api/v1/admin/*", "(GET)|(POST)"}})

	ok, err := enforcer.Enforce("admin", "/api/v1/admin/policies", "GET")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = enforcer.Enforce("admin", "/api/v1/admin/policies", "DELETE")
	assert.False(t, ok)

	ok, _ = enforcer.Enforce("user", "/api/v1/admin/policies", "GET")
	assert.False(t, ok)
}
