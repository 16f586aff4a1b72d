package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/http/handlers"
	"github.com/you/elearnauth/internal/http/middleware"
	"github.com/you/elearnauth/internal/logging"
	"github.com/you/elearnauth/internal/mocks"
	"github.com/you/elearnauth/internal/services"
)

func newTestRouter(gate *mocks.MockAuthorizationGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cookies := handlers.NewCookieConfig("access_token", "refresh_token", "", "none", false)
	authSvc := mocks.NewMockAuthService()
	audit := mocks.NewMockAuditLogger()
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.SetPolicies(services.DefaultPolicies("/api/v1"))
	policies := services.NewPolicyServiceWithEnforcer(enforcer)

	return BuildRouter(RouterDeps{
		BasePath:       "/api/v1",
		RequestTimeout: time.Second,
		Log:            logging.NewNop(),
		Auth:           handlers.NewAuthHandlers(authSvc, mocks.NewMockAccountService(), cookies),
		Users:          handlers.NewUserHandlers(mocks.NewMockAccountService()),
		Policies:       handlers.NewPolicyHandlers(policies),
		AuthMW:         middleware.NewAuthMW(authSvc, gate, audit, cookies),
		Casbin:         middleware.NewCasbinMW(policies, audit),
	})
}

// adminGate resolves "admin" to an admin principal and anything else through the default mock
func adminGate() *mocks.MockAuthorizationGate {
	gate := mocks.NewMockAuthorizationGate()
	fallback := mocks.NewMockAuthorizationGate()
	gate.AuthenticateFunc = func(ctx context.Context, accessToken string) (*domain.Principal, error) {
		if accessToken == "admin" {
			return &domain.Principal{ID: "acc-admin", Role: domain.RoleAdmin}, nil
		}
		return fallback.Authenticate(ctx, accessToken)
	}
	return gate
}

func TestBuildRouter_Routes(t *testing.T) {
	r := newTestRouter(adminGate())

	tests := []struct {
		name           string
		method         string
		path           string
		bearer         string
		body           string
		expectedStatus int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"register is public", http.MethodPost, "/api/v1/register", "", `{"name":"Ann","email":"a@x.com","password":"pw123456"}`, http.StatusCreated},
		{"login is public", http.MethodPost, "/api/v1/login", "", `{"email":"a@x.com","password":"pw123456"}`, http.StatusOK},
		{"me is public", http.MethodGet, "/api/v1/me", "", "", http.StatusOK},
		{"logout without session", http.MethodPost, "/api/v1/logout", "", "", http.StatusOK},
		{"profile needs a token", http.MethodPut, "/api/v1/update-user", "", `{"name":"Ann"}`, http.StatusUnauthorized},
		{"profile with token", http.MethodPut, "/api/v1/update-user", "access_token_acc-1", `{"name":"Ann"}`, http.StatusCreated},
		{"admin route rejects users", http.MethodGet, "/api/v1/get-all-users", "access_token_acc-1", "", http.StatusForbidden},
		{"admin route admits admins", http.MethodGet, "/api/v1/get-all-users", "admin", "", http.StatusOK},
		{"delete user", http.MethodDelete, "/api/v1/delete-user/acc-2", "admin", "", http.StatusOK},
		{"policies for admins", http.MethodGet, "/api/v1/admin/policies", "admin", "", http.StatusOK},
		{"policies hidden from users", http.MethodGet, "/api/v1/admin/policies", "access_token_acc-1", "", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
