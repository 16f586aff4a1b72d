package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/you/elearnauth/domain"
)

// JWTConfig holds the secrets and lifetimes handed to the token issuer at construction
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Kind domain.TokenKind `json:"typ"`
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg JWTConfig) *JWTServiceImpl {
	return &JWTServiceImpl{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

// WithClock replaces the clock used for minting and verification
func (j *JWTServiceImpl) WithClock(now func() time.Time) *JWTServiceImpl {
	j.now = now
	return j
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(accountID string) (string, error) {
	return j.generate(accountID, domain.AccessToken, j.accessSecret, j.accessTTL)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(accountID string) (string, error) {
	return j.generate(accountID, domain.RefreshToken, j.refreshSecret, j.refreshTTL)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	return j.validate(token, domain.AccessToken, j.accessSecret)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	return j.validate(token, domain.RefreshToken, j.refreshSecret)
}

// AccessTTL implements domain.TokenService
func (j *JWTServiceImpl) AccessTTL() time.Duration { return j.accessTTL }

// RefreshTTL implements domain.TokenService
func (j *JWTServiceImpl) RefreshTTL() time.Duration { return j.refreshTTL }

func (j *JWTServiceImpl) generate(accountID string, kind domain.TokenKind, secret []byte, ttl time.Duration) (string, error) {
	if accountID == "" {
		return "", domain.ErrTokenInvalid
	}
	now := j.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Kind: kind,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (j *JWTServiceImpl) validate(tokenString string, kind domain.TokenKind, secret []byte) (*domain.TokenClaims, error) {
	if tokenString == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid || claims.Kind != kind || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	result := &domain.TokenClaims{
		AccountID: claims.Subject,
		Kind:      claims.Kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}

var _ domain.TokenService = (*JWTServiceImpl)(nil)
