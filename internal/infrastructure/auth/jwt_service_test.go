package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/elearnauth/domain"
)

func newTestJWTService(now func() time.Time) *JWTServiceImpl {
	svc := NewJWTService(JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "elearnauth-test",
		AccessTTL:     24 * time.Hour,
		RefreshTTL:    72 * time.Hour,
	})
	if now != nil {
		svc.WithClock(now)
	}
	return svc
}

func TestJWTService_RoundTripAnyAccountIDFormat(t *testing.T) {
	svc := newTestJWTService(nil)

	ids := []string{
		"6650f1c2a9b3e4d5f6a7b8c9",
		"3f2b9c1e-7d4a-4b8e-9f10-2a3b4c5d6e7f",
		"42",
		"user:with:colons",
		"ünïcødé-id",
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			access, err := svc.GenerateAccessToken(id)
			require.NoError(t, err)
			claims, err := svc.ValidateAccessToken(access)
			require.NoError(t, err)
			assert.Equal(t, id, claims.AccountID)
			assert.Equal(t, domain.AccessToken, claims.Kind)

			refresh, err := svc.GenerateRefreshToken(id)
			require.NoError(t, err)
			claims, err = svc.ValidateRefreshToken(refresh)
			require.NoError(t, err)
			assert.Equal(t, id, claims.AccountID)
			assert.Equal(t, domain.RefreshToken, claims.Kind)
		})
	}
}

func TestJWTService_ExpiryIsAbsoluteAndEmbedded(t *testing.T) {
	minted := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := minted
	svc := newTestJWTService(func() time.Time { return now })

	access, err := svc.GenerateAccessToken("acc-1")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken("acc-1")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, minted.Add(24*time.Hour), claims.ExpiresAt.UTC())
	assert.Equal(t, minted, claims.IssuedAt.UTC())

	// access token lapses after one day, refresh token is still valid
	now = minted.Add(25 * time.Hour)
	_, err = svc.ValidateAccessToken(access)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)

	now = minted.Add(72*time.Hour + time.Second)
	_, err = svc.ValidateRefreshToken(refresh)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestJWTService_InvalidTokens(t *testing.T) {
	svc := newTestJWTService(nil)
	access, err := svc.GenerateAccessToken("acc-1")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken("acc-1")
	require.NoError(t, err)

	parts := strings.Split(access, ".")
	require.Len(t, parts, 3)
	tamperedPayload := parts[0] + "." + jwtSegment(t, `{"sub":"acc-2","typ":"access","iss":"elearnauth-test","exp":4102444800}`) + "." + parts[2]

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "acc-1", "typ": "access", "iss": "elearnauth-test", "exp": time.Now().Add(time.Hour).Unix(),
	})
	foreignToken, err := foreign.SignedString([]byte("someone-elses-secret"))
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "acc-1", "typ": "access", "iss": "elearnauth-test", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		check func(string) (*domain.TokenClaims, error)
	}{
		{name: "empty", token: "", check: svc.ValidateAccessToken},
		{name: "garbage", token: "not-a-jwt", check: svc.ValidateAccessToken},
		{name: "tampered payload", token: tamperedPayload, check: svc.ValidateAccessToken},
		{name: "foreign secret", token: foreignToken, check: svc.ValidateAccessToken},
		{name: "alg none", token: noneToken, check: svc.ValidateAccessToken},
		{name: "refresh used as access", token: refresh, check: svc.ValidateAccessToken},
		{name: "access used as refresh", token: access, check: svc.ValidateRefreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.check(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}

func TestJWTService_RejectsEmptyAccountID(t *testing.T) {
	svc := newTestJWTService(nil)
	_, err := svc.GenerateAccessToken("")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_TTLs(t *testing.T) {
	svc := newTestJWTService(nil)
	assert.Equal(t, 24*time.Hour, svc.AccessTTL())
	assert.Equal(t, 72*time.Hour, svc.RefreshTTL())
}

func jwtSegment(t *testing.T, payload string) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}
