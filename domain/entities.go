package domain

import "time"

// Roles recognised by the authorization gate
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the enumerated account roles
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// Account is the durable credential record owned by the credential store.
// PasswordHash is empty for accounts created through social login.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	AvatarURL    string
	IsVerified   bool
	Courses      []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account was created through credential registration
func (a *Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// PrincipalSchemaVersion is written into every cached principal
const PrincipalSchemaVersion = 1

// Principal is the point-in-time snapshot of an authenticated account kept in
// the session cache. It is not the system of record.
type Principal struct {
	SchemaVersion int       `json:"schema_version"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Avatar        string    `json:"avatar,omitempty"`
	IsVerified    bool      `json:"is_verified"`
	Courses       []string  `json:"courses"`
	CachedAt      time.Time `json:"cached_at"`
}

// NewPrincipal snapshots an account
func NewPrincipal(a *Account) *Principal {
	courses := make([]string, len(a.Courses))
	copy(courses, a.Courses)
	return &Principal{
		SchemaVersion: PrincipalSchemaVersion,
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Role:          a.Role,
		Avatar:        a.AvatarURL,
		IsVerified:    a.IsVerified,
		Courses:       courses,
		CachedAt:      time.Now().UTC(),
	}
}

// AuthResult is what a successful login, social login or refresh hands to the transport layer
type AuthResult struct {
	Principal    *Principal
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// RegistrationResult carries the activation ticket back to the registering client
type RegistrationResult struct {
	Email           string
	ActivationToken string
}

// ActivationTicket is a freshly issued signed envelope plus the out-of-band code
type ActivationTicket struct {
	Token     string
	Code      string
	ExpiresAt time.Time
}

// TokenKind distinguishes access from refresh tokens
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// TokenClaims represents verified JWT claims
type TokenClaims struct {
	AccountID string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}
