package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/domain"
)

// errorStatus maps domain errors to HTTP status codes. Order matters: wrapped
// errors carry several sentinels and the first match wins.
var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrSessionUnavailable, http.StatusServiceUnavailable},
	{domain.ErrTokenExpired, http.StatusBadRequest},
	{domain.ErrRefreshFailed, http.StatusBadRequest},
	{domain.ErrSessionNotFound, http.StatusNotFound},
	{domain.ErrTokenInvalid, http.StatusBadRequest},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrUserAlreadyExists, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusBadRequest},
	{domain.ErrAccountNotVerified, http.StatusForbidden},
	{domain.ErrInvalidActivationCode, http.StatusBadRequest},
	{domain.ErrActivationExpired, http.StatusBadRequest},
	{domain.ErrAlreadyVerified, http.StatusBadRequest},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrDeliveryFailed, http.StatusBadGateway},
}

// StatusFor returns the status code RespondError would use for err
func StatusFor(err error) int {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// RespondError writes the {success:false, message} body for err and aborts the chain.
// Unclassified errors get a generic message and are attached to the context for the request logger.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		_ = c.Error(err)
		message = "Internal Server Error"
	case status == http.StatusServiceUnavailable:
		_ = c.Error(err)
		message = "Service temporarily unavailable, please retry"
	case errors.Is(err, domain.ErrTokenExpired):
		message = domain.ErrTokenExpired.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// bindError turns a request binding failure into a validation error
func bindError(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
}
