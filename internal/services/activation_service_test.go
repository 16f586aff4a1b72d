package services

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/elearnauth/domain"
)

func createActivationServiceForTest(t *testing.T, now func() time.Time) *ActivationServiceImpl {
	t.Helper()
	svc := NewActivationService(ActivationConfig{
		Secret:  "activation-secret",
		TTL:     60 * time.Minute,
		CodeMin: 1000,
		CodeMax: 9999,
	})
	if now != nil {
		svc.WithClock(now)
	}
	return svc
}

func TestActivationServiceImpl_IssueAndVerify(t *testing.T) {
	svc := createActivationServiceForTest(t, nil)

	ticket, err := svc.Issue(" Ann@Example.com ")
	require.NoError(t, err)
	assert.Len(t, ticket.Code, 4)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(ticket.Token, claims)
	require.NoError(t, err)
	for key, value := range claims {
		assert.NotEqual(t, ticket.Code, fmt.Sprint(value), "claim %s exposes the code", key)
	}
	assert.WithinDuration(t, time.Now().Add(time.Hour), ticket.ExpiresAt, 5*time.Second)

	email, err := svc.Verify(ticket.Token, ticket.Code)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)

	// verification is a pure decode and compare, so it can be repeated
	email, err = svc.Verify(ticket.Token, ticket.Code)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)
}

func TestActivationServiceImpl_CodeMustMatchExactly(t *testing.T) {
	svc := createActivationServiceForTest(t, nil)
	ticket, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	for _, submitted := range []string{" " + ticket.Code, ticket.Code + " ", ticket.Code + "\n", "0" + ticket.Code, ""} {
		_, err := svc.Verify(ticket.Token, submitted)
		assert.ErrorIs(t, err, domain.ErrInvalidActivationCode, "code %q", submitted)
	}
}

func TestActivationServiceImpl_InvertedRange(t *testing.T) {
	svc := NewActivationService(ActivationConfig{Secret: "s", TTL: time.Minute, CodeMin: 9999, CodeMax: 1000})

	assert.NotPanics(t, func() {
		ticket, err := svc.Issue("a@x.com")
		assert.Error(t, err)
		assert.Nil(t, ticket)
	})
}

func TestActivationServiceImpl_CodeStaysInRange(t *testing.T) {
	svc := createActivationServiceForTest(t, nil)
	low, high := svc.CodeRange()

	for i := 0; i < 200; i++ {
		ticket, err := svc.Issue("a@x.com")
		require.NoError(t, err)
		n, err := strconv.Atoi(ticket.Code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, low)
		assert.LessOrEqual(t, n, high)
	}
}

func TestActivationServiceImpl_CodeKeepsWidth(t *testing.T) {
	svc := NewActivationService(ActivationConfig{Secret: "s", TTL: time.Minute, CodeMin: 0, CodeMax: 99})
	for i := 0; i < 50; i++ {
		ticket, err := svc.Issue("a@x.com")
		require.NoError(t, err)
		assert.Len(t, ticket.Code, 2)
	}
}

func TestActivationServiceImpl_RejectsEveryWrongCode(t *testing.T) {
	svc := createActivationServiceForTest(t, nil)
	ticket, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	low, high := svc.CodeRange()
	for n := low; n <= high; n++ {
		code := strconv.Itoa(n)
		if code == ticket.Code {
			continue
		}
		_, err := svc.Verify(ticket.Token, code)
		if !assert.ErrorIs(t, err, domain.ErrInvalidActivationCode, "code %s", code) {
			return
		}
	}
}

func TestActivationServiceImpl_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	svc := createActivationServiceForTest(t, func() time.Time { return now })

	ticket, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	now = issuedAt.Add(59 * time.Minute)
	_, err = svc.Verify(ticket.Token, ticket.Code)
	require.NoError(t, err)

	now = issuedAt.Add(61 * time.Minute)
	_, err = svc.Verify(ticket.Token, ticket.Code)
	assert.ErrorIs(t, err, domain.ErrActivationExpired)

	// expiry wins over a wrong code
	_, err = svc.Verify(ticket.Token, "0000")
	assert.ErrorIs(t, err, domain.ErrActivationExpired)
}

func TestActivationServiceImpl_InvalidTickets(t *testing.T) {
	svc := createActivationServiceForTest(t, nil)
	ticket, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	foreign := NewActivationService(ActivationConfig{Secret: "other-secret", TTL: time.Hour, CodeMin: 1000, CodeMax: 9999})
	foreignTicket, err := foreign.Issue("a@x.com")
	require.NoError(t, err)

	noDigest, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("activation-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "signed with another secret", token: foreignTicket.Token},
		{name: "missing digest", token: noDigest},
		{name: "truncated", token: ticket.Token[:len(ticket.Token)-4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token, ticket.Code)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}

func TestActivationServiceImpl_TicketBoundToEmail(t *testing.T) {
	svc := createActivationServiceForTest(t, nil)
	first, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	second, err := svc.Issue("b@x.com")
	require.NoError(t, err)

	if first.Code != second.Code {
		_, err = svc.Verify(first.Token, second.Code)
		assert.ErrorIs(t, err, domain.ErrInvalidActivationCode)
	}

	_, err = svc.Issue("")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func ExampleActivationServiceImpl_Verify() {
	svc := NewActivationService(ActivationConfig{Secret: "secret", TTL: time.Hour, CodeMin: 1000, CodeMax: 9999})
	ticket, _ := svc.Issue("student@example.com")
	email, err := svc.Verify(ticket.Token, ticket.Code)
	fmt.Println(email, err)
	// Output: student@example.com <nil>
}
