package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/mocks"
	"github.com/you/elearnauth/internal/services"
)

func TestPolicyHandlers(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	h := NewPolicyHandlers(services.NewPolicyServiceWithEnforcer(enforcer))
	admin := testPrincipal(domain.RoleAdmin)

	list := newTestRouter(http.MethodGet, "/admin/policies", admin, h.List)
	add := newTestRouter(http.MethodPost, "/admin/policies", admin, h.Add)
	remove := newTestRouter(http.MethodDelete, "/admin/policies", admin, h.Remove)

	w := performRequest(t, list, http.MethodGet, "/admin/policies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decodeBody(t, w)["policies"])

	rule := map[string]string{"sub": "user", "obj": "/api/v1/courses/*", "act": "GET"}
	w = performRequest(t, add, http.MethodPost, "/admin/policies", rule)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(t, list, http.MethodGet, "/admin/policies", nil)
	assert.Equal(t, []any{[]any{"user", "/api/v1/courses/*", "GET"}}, decodeBody(t, w)["policies"])

	w = performRequest(t, add, http.MethodPost, "/admin/policies", map[string]string{"sub": "user"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, remove, http.MethodDelete, "/admin/policies", rule)
	require.Equal(t, http.StatusNoContent, w.Code)
	policies, err := enforcer.GetPolicy()
	require.NoError(t, err)
	assert.Empty(t, policies)
}
