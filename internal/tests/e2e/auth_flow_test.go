package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterActivateLogin(t *testing.T) {
	env := newTestEnv(t)
	client := env.browser()

	env.registerAndActivate(client, "Ann", "a@x.com", "pw123456")
	body := env.login(client, "a@x.com", "pw123456")

	user := body["user"].(map[string]any)
	assert.Equal(t, true, user["is_verified"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotEmpty(t, body["accessToken"])
	assert.NotEmpty(t, body["refreshToken"])
	assert.True(t, env.redis.Exists(userID(body)))

	// the access token alone resolves to the same account
	me := env.do(http.DefaultClient, http.MethodGet, "/me", nil, body["accessToken"].(string))
	require.Equal(t, http.StatusOK, me.Status)
	assert.Equal(t, userID(body), me.Body["user"].(map[string]any)["id"])

	// cookies alone do too
	me = env.do(client, http.MethodGet, "/me?withCache=true", nil, "")
	require.Equal(t, http.StatusOK, me.Status)
	assert.Equal(t, userID(body), me.Body["user"].(map[string]any)["id"])
}

func TestRegister_Rejections(t *testing.T) {
	env := newTestEnv(t)
	client := env.browser()
	env.registerAndActivate(client, "Ann", "a@x.com", "pw123456")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"duplicate email", map[string]string{"name": "Ann", "email": "a@x.com", "password": "pw123456"}},
		{"duplicate email in other case", map[string]string{"name": "Ann", "email": "A@X.com", "password": "pw123456"}},
		{"short password", map[string]string{"name": "Bea", "email": "b@x.com", "password": "short"}},
		{"bad email", map[string]string{"name": "Bea", "email": "not-an-email", "password": "pw123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(client, http.MethodPost, "/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, resp.Status)
			assert.Equal(t, false, resp.Body["success"])
		})
	}
}

func TestActivate_WrongCodeThenAlreadyVerified(t *testing.T) {
	env := newTestEnv(t)
	client := env.browser()

	reg := env.do(client, http.MethodPost, "/register", map[string]string{
		"name": "Ann", "email": "a@x.com", "password": "pw123456",
	}, "")
	require.Equal(t, http.StatusCreated, reg.Status)
	mail, _ := env.mailer.Last()
	code := mail.Data["activationCode"].(string)
	wrong := "0000"
	if code == wrong {
		wrong = "0001"
	}

	resp := env.do(client, http.MethodPost, "/activate", map[string]string{
		"activation_token": reg.Body["activationToken"].(string),
		"activation_code":  wrong,
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "invalid activation code", resp.Body["message"])

	activate := map[string]string{
		"activation_token": reg.Body["activationToken"].(string),
		"activation_code":  code,
	}
	resp = env.do(client, http.MethodPost, "/activate", activate, "")
	require.Equal(t, http.StatusCreated, resp.Status)

	resp = env.do(client, http.MethodPost, "/activate", activate, "")
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "user already verified", resp.Body["message"])
}

func TestLogin_WrongPasswordCreatesNoSession(t *testing.T) {
	env := newTestEnv(t)
	client := env.browser()
	env.registerAndActivate(client, "Ann", "a@x.com", "pw123456")

	resp := env.do(client, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "wrongpw1"}, "")

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "invalid email or password", resp.Body["message"])
	assert.Empty(t, env.redis.Keys())
}

func TestSocialLogin_ReusesAccount(t *testing.T) {
	env := newTestEnv(t)
	social := map[string]string{"email": "b@x.com", "name": "Bea", "avatar": "http://img"}

	first := env.do(env.browser(), http.MethodPost, "/social-auth", social, "")
	require.Equal(t, http.StatusOK, first.Status, first.Body)
	second := env.do(env.browser(), http.MethodPost, "/social-auth", social, "")
	require.Equal(t, http.StatusOK, second.Status, second.Body)

	assert.Equal(t, userID(first.Body), userID(second.Body))
	assert.Equal(t, true, first.Body["user"].(map[string]any)["is_verified"])

	// a social account has no password to log in with
	resp := env.do(env.browser(), http.MethodPost, "/login", map[string]string{"email": "b@x.com", "password": "anything1"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	var count int64
	require.NoError(t, env.container.DB.Table("accounts").Where("email = ?", "b@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogout_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	client := env.browser()
	env.registerAndActivate(client, "Ann", "a@x.com", "pw123456")
	body := env.login(client, "a@x.com", "pw123456")
	require.True(t, env.redis.Exists(userID(body)))

	first := env.do(client, http.MethodPost, "/logout", nil, "")
	second := env.do(client, http.MethodPost, "/logout", nil, "")

	assert.Equal(t, http.StatusOK, first.Status)
	assert.Equal(t, http.StatusOK, second.Status)
	assert.False(t, env.redis.Exists(userID(body)))

	me := env.do(client, http.MethodGet, "/me", nil, "")
	require.Equal(t, http.StatusOK, me.Status)
	assert.Nil(t, me.Body["user"])
}
