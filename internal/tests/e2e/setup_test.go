package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/elearnauth/internal/app"
	"github.com/you/elearnauth/internal/logging"
	"github.com/you/elearnauth/internal/mocks"
	testconfig "github.com/you/elearnauth/internal/tests/config"
)

const basePath = "/api/v1"

// testEnv is the full service over in-memory sqlite and miniredis
type testEnv struct {
	t         *testing.T
	server    *httptest.Server
	redis     *miniredis.Miniredis
	mailer    *mocks.MockMailSender
	container *app.Container
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testconfig.LoadTestConfig(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", name)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mailer := mocks.NewMockMailSender()
	c, err := app.NewContainerWith(cfg, logging.NewNop(), db, rdb, app.WithMailer(mailer))
	require.NoError(t, err)

	server := httptest.NewServer(c.Router())
	t.Cleanup(func() {
		server.Close()
		_ = c.Close()
	})

	return &testEnv{t: t, server: server, redis: mr, mailer: mailer, container: c}
}

// browser returns a client that keeps cookies like a browser would
func (e *testEnv) browser() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(e.t, err)
	return &http.Client{Jar: jar}
}

type response struct {
	Status int
	Body   map[string]any
}

// do sends a JSON request; bearer, when set, goes in the Authorization header
func (e *testEnv) do(client *http.Client, method, path string, body any, bearer string) response {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+basePath+path, reader)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	out := response{Status: resp.StatusCode}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	if len(raw) > 0 {
		require.NoError(e.t, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

// registerAndActivate registers an account and activates it with the mailed code
func (e *testEnv) registerAndActivate(client *http.Client, name, email, password string) {
	e.t.Helper()
	reg := e.do(client, http.MethodPost, "/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, "")
	require.Equal(e.t, http.StatusCreated, reg.Status, reg.Body)

	mail, ok := e.mailer.Last()
	require.True(e.t, ok)
	require.Equal(e.t, email, mail.To)

	act := e.do(client, http.MethodPost, "/activate", map[string]string{
		"activation_token": reg.Body["activationToken"].(string),
		"activation_code":  mail.Data["activationCode"].(string),
	}, "")
	require.Equal(e.t, http.StatusCreated, act.Status, act.Body)
}

// login returns the login response body
func (e *testEnv) login(client *http.Client, email, password string) map[string]any {
	e.t.Helper()
	resp := e.do(client, http.MethodPost, "/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(e.t, http.StatusOK, resp.Status, resp.Body)
	return resp.Body
}

func userID(body map[string]any) string {
	return body["user"].(map[string]any)["id"].(string)
}
