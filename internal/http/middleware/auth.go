package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/http/handlers"
)

// AuthMW wires the session manager and authorization gate into the request pipeline.
// Protected routes run Refresh, then Authenticate, then any role check.
type AuthMW struct {
	authSvc domain.AuthService
	gate    domain.AuthorizationGate
	audit   domain.AuditLogger
	cookies handlers.CookieConfig
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authSvc domain.AuthService, gate domain.AuthorizationGate, audit domain.AuditLogger, cookies handlers.CookieConfig) *AuthMW {
	return &AuthMW{
		authSvc: authSvc,
		gate:    gate,
		audit:   audit,
		cookies: cookies,
	}
}

// Refresh rotates the token pair when the caller presents a refresh token.
// Without one the request passes through untouched and Authenticate decides.
func (mw *AuthMW) Refresh() gin.HandlerFunc {
	return mw.refresh(true)
}

// TryRefresh is Refresh that never rejects the request
func (mw *AuthMW) TryRefresh() gin.HandlerFunc {
	return mw.refresh(false)
}

func (mw *AuthMW) refresh(strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken := mw.cookies.RefreshToken(c)
		if refreshToken == "" {
			c.Next()
			return
		}

		result, err := mw.authSvc.Refresh(c.Request.Context(), refreshToken)
		if err != nil {
			if strict {
				handlers.RespondError(c, err)
				return
			}
			c.Next()
			return
		}

		mw.cookies.SetTokens(c, result)
		handlers.SetAccessToken(c, result.AccessToken)
		c.Next()
	}
}

// Authenticate requires a valid access token backed by a live session
func (mw *AuthMW) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := mw.gate.Authenticate(c.Request.Context(), mw.cookies.AccessToken(c))
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		handlers.SetPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuthenticate attaches the principal when an access token is present.
// Anonymous callers pass; a presented token that fails is still rejected.
func (mw *AuthMW) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := mw.cookies.AccessToken(c)
		if token == "" {
			c.Next()
			return
		}
		principal, err := mw.gate.Authenticate(c.Request.Context(), token)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		handlers.SetPrincipal(c, principal)
		c.Next()
	}
}

// Identify attaches the principal when the access token resolves and otherwise continues anonymously.
// A cache outage still fails the request.
func (mw *AuthMW) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := mw.cookies.AccessToken(c)
		if token == "" {
			c.Next()
			return
		}
		principal, err := mw.gate.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			handlers.SetPrincipal(c, principal)
		case errors.Is(err, domain.ErrSessionUnavailable):
			handlers.RespondError(c, err)
			return
		}
		c.Next()
	}
}

// RequireRoles admits only principals holding one of roles
func (mw *AuthMW) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := handlers.CurrentPrincipal(c)
		if err := mw.gate.Authorize(principal, roles...); err != nil {
			if principal != nil {
				mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, principal.ID).
					WithMetadata("path", c.FullPath()).
					WithMetadata("method", c.Request.Method).
					WithError(err))
			}
			handlers.RespondError(c, err)
			return
		}
		c.Next()
	}
}
