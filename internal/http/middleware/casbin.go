package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/http/handlers"
)

// CasbinMW enforces the stored route policies for the authenticated principal's role
type CasbinMW struct {
	policies domain.PolicyService
	audit    domain.AuditLogger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policies domain.PolicyService, audit domain.AuditLogger) *CasbinMW {
	return &CasbinMW{policies: policies, audit: audit}
}

// Enforce returns the casbin authorization middleware. It must run after Authenticate.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := handlers.CurrentPrincipal(c)
		if !ok {
			handlers.RespondError(c, domain.ErrUnauthenticated)
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method
		allowed, err := mw.policies.CheckPermission(principal.Role, path, method)
		if err != nil {
			handlers.RespondError(c, fmt.Errorf("authorization check failed: %w", err))
			return
		}
		if !allowed {
			denied := fmt.Errorf("%w: role %s may not %s %s", domain.ErrForbidden, principal.Role, method, path)
			mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, principal.ID).
				WithMetadata("path", path).
				WithMetadata("method", method).
				WithError(denied))
			handlers.RespondError(c, denied)
			return
		}

		c.Next()
	}
}
