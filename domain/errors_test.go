package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrValidation,
		ErrUserNotFound,
		ErrInvalidCredentials,
		ErrUserAlreadyExists,
		ErrAccountNotVerified,
		ErrUnauthenticated,
		ErrInvalidActivationCode,
		ErrActivationExpired,
		ErrAlreadyVerified,
		ErrDeliveryFailed,
		ErrTokenInvalid,
		ErrTokenExpired,
		ErrRefreshFailed,
		ErrSessionNotFound,
		ErrSessionUnavailable,
		ErrPrincipalSchema,
		ErrForbidden,
		ErrCacheMiss,
	}

	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("expected %q and %q to be distinct", a, b)
			}
		}
	}
}

func TestErrors_WrappedRefreshFailureKeepsCause(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrRefreshFailed, ErrSessionNotFound)

	if !errors.Is(err, ErrRefreshFailed) {
		t.Error("expected wrapped error to match ErrRefreshFailed")
	}
	if !errors.Is(err, ErrSessionNotFound) {
		t.Error("expected wrapped error to match ErrSessionNotFound")
	}
}

func TestErrors_ExpiredMessagesMentionExpiry(t *testing.T) {
	for _, err := range []error{ErrTokenExpired, ErrActivationExpired} {
		msg := err.Error()
		if !strings.Contains(msg, "expire") {
			t.Errorf("expected %q to mention expiry", msg)
		}
	}
}
