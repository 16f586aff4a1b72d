package domain

import "errors"

// Validation errors
var (
	ErrValidation = errors.New("validation failed")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrAccountNotVerified = errors.New("account is not verified")
	ErrUnauthenticated    = errors.New("you are not authenticated, please log in")
)

// Activation errors
var (
	ErrInvalidActivationCode = errors.New("invalid activation code")
	ErrActivationExpired     = errors.New("activation code has expired")
	ErrAlreadyVerified       = errors.New("user already verified")
	ErrDeliveryFailed        = errors.New("failed to deliver activation email")
)

// Token errors
var (
	ErrTokenInvalid  = errors.New("token is not valid")
	ErrTokenExpired  = errors.New("token expired, please login again")
	ErrRefreshFailed = errors.New("could not refresh token")
)

// Session errors
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionUnavailable = errors.New("session cache unavailable")
	ErrPrincipalSchema    = errors.New("unsupported cached principal schema")
)

// Authorization errors
var (
	ErrForbidden = errors.New("forbidden")
)
