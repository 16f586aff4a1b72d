package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/you/elearnauth/domain"
)

func testCookies() CookieConfig {
	return NewCookieConfig("access_token", "refresh_token", "", "none", false)
}

// newTestRouter mounts h behind an optional stage that attaches principal
func newTestRouter(method, path string, principal *domain.Principal, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	stages := []gin.HandlerFunc{}
	if principal != nil {
		stages = append(stages, func(c *gin.Context) {
			SetPrincipal(c, principal)
			c.Next()
		})
	}
	stages = append(stages, h)
	r.Handle(method, path, stages...)
	return r
}

func performRequest(t *testing.T, r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// setCookie returns the Set-Cookie header written for name
func setCookie(w *httptest.ResponseRecorder, name string) string {
	for _, v := range w.Header().Values("Set-Cookie") {
		if strings.HasPrefix(v, name+"=") {
			return v
		}
	}
	return ""
}

func testPrincipal(role string) *domain.Principal {
	return &domain.Principal{
		SchemaVersion: domain.PrincipalSchemaVersion,
		ID:            "acc-1",
		Name:          "Test User",
		Email:         "user@example.com",
		Role:          role,
		IsVerified:    true,
	}
}
