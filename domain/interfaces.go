package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by a SessionCache when the key holds no value
var ErrCacheMiss = errors.New("cache miss")

// AccountRepository defines credential store operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	MarkVerified(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Account, error)
	Delete(ctx context.Context, id string) error
}

// SessionCache is the raw key/value store with per-key expiry backing sessions.
// Get returns ErrCacheMiss when the key is absent.
type SessionCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetIfExists writes only over a present key, atomically, and reports whether it wrote
	SetIfExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// SessionRepository stores principals in the session cache, keyed by account id
type SessionRepository interface {
	Save(ctx context.Context, principal *Principal) error
	Find(ctx context.Context, accountID string) (*Principal, error)
	// Replace overwrites an existing entry and reports whether one was present.
	// An entry deleted concurrently is never recreated.
	Replace(ctx context.Context, principal *Principal) (bool, error)
	Delete(ctx context.Context, accountID string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService mints and verifies access and refresh tokens
type TokenService interface {
	GenerateAccessToken(accountID string) (string, error)
	GenerateRefreshToken(accountID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// ActivationService issues and verifies activation tickets.
// Verify never touches the credential store or the session cache.
type ActivationService interface {
	Issue(email string) (*ActivationTicket, error)
	Verify(token, code string) (string, error)
}

// MailSender delivers templated mail
type MailSender interface {
	Send(ctx context.Context, to, subject, template string, data map[string]any) error
}

// AuthService is the session manager: registration, activation, login, refresh, logout
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*RegistrationResult, error)
	Activate(ctx context.Context, activationToken, code string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	SocialLogin(ctx context.Context, email, name, avatar string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, accountID string) error
}

// AuthorizationGate resolves the caller from an access token and enforces roles
type AuthorizationGate interface {
	Authenticate(ctx context.Context, accessToken string) (*Principal, error)
	Authorize(principal *Principal, allowedRoles ...string) error
}

// AccountService covers account mutations that must keep the cached principal in step
type AccountService interface {
	Profile(ctx context.Context, principal *Principal, fromStore bool) (*Principal, error)
	UpdateName(ctx context.Context, accountID, name string) (*Principal, error)
	UpdatePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*Principal, error)
	UpdateAvatar(ctx context.Context, accountID, avatarURL string) (*Principal, error)
	UpdateRole(ctx context.Context, accountID, role string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Delete(ctx context.Context, accountID string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
