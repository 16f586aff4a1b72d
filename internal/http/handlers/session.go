package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/domain"
)

const (
	principalKey   = "principal"
	accessTokenKey = "access_token"

	// RefreshTokenHeader carries the refresh token for clients that cannot rely on cookies
	RefreshTokenHeader = "X-Refresh-Token"
)

// CookieConfig controls the token cookies written on login, refresh and logout
type CookieConfig struct {
	AccessName  string
	RefreshName string
	Domain      string
	SameSite    http.SameSite
	Secure      bool
}

// NewCookieConfig builds a CookieConfig; sameSite is one of strict, lax or none
func NewCookieConfig(accessName, refreshName, domain, sameSite string, secure bool) CookieConfig {
	return CookieConfig{
		AccessName:  accessName,
		RefreshName: refreshName,
		Domain:      domain,
		SameSite:    parseSameSite(sameSite),
		Secure:      secure,
	}
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteNoneMode
	}
}

// SetTokens writes both token cookies with lifetimes matching the tokens
func (cc CookieConfig) SetTokens(c *gin.Context, result *domain.AuthResult) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.AccessName, result.AccessToken, int(result.AccessTTL.Seconds()), "/", cc.Domain, cc.Secure, true)
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.RefreshName, result.RefreshToken, int(result.RefreshTTL.Seconds()), "/", cc.Domain, cc.Secure, true)
}

// Clear expires both token cookies
func (cc CookieConfig) Clear(c *gin.Context) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.AccessName, "", -1, "/", cc.Domain, cc.Secure, true)
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.RefreshName, "", -1, "/", cc.Domain, cc.Secure, true)
}

// AccessToken finds the caller's access token: one rotated earlier in this request,
// then the cookie, then a Bearer header.
func (cc CookieConfig) AccessToken(c *gin.Context) string {
	if v, ok := c.Get(accessTokenKey); ok {
		if token, ok := v.(string); ok && token != "" {
			return token
		}
	}
	if token, err := c.Cookie(cc.AccessName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RefreshToken finds the caller's refresh token in the cookie or the X-Refresh-Token header
func (cc CookieConfig) RefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(cc.RefreshName); err == nil && token != "" {
		return token
	}
	return strings.TrimSpace(c.GetHeader(RefreshTokenHeader))
}

// SetAccessToken records a freshly rotated access token for later stages of this request
func SetAccessToken(c *gin.Context, token string) {
	c.Set(accessTokenKey, token)
}

// SetPrincipal attaches the authenticated principal to the request
func SetPrincipal(c *gin.Context, principal *domain.Principal) {
	c.Set(principalKey, principal)
}

// CurrentPrincipal returns the principal attached by the authentication stage, if any
func CurrentPrincipal(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok && p != nil
}

func mustPrincipal(c *gin.Context) (*domain.Principal, bool) {
	p, ok := CurrentPrincipal(c)
	if !ok {
		RespondError(c, domain.ErrUnauthenticated)
	}
	return p, ok
}
