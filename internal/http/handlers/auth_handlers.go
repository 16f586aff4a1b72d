package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/domain"
)

// AuthHandlers serves registration, activation and the session lifecycle
type AuthHandlers struct {
	authSvc    domain.AuthService
	accountSvc domain.AccountService
	cookies    CookieConfig
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, accountSvc domain.AccountService, cookies CookieConfig) *AuthHandlers {
	return &AuthHandlers{
		authSvc:    authSvc,
		accountSvc: accountSvc,
		cookies:    cookies,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ActivateRequest carries the ticket from registration and the mailed code
type ActivateRequest struct {
	ActivationToken string `json:"activation_token" binding:"required"`
	ActivationCode  string `json:"activation_code" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SocialAuthRequest is the identity asserted by a social provider
type SocialAuthRequest struct {
	Email  string `json:"email" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
}

// Register handles account registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, bindError(err))
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"message":         "Please check your email: " + result.Email + " to activate your account!",
		"activationToken": result.ActivationToken,
	})
}

// Activate handles account activation
func (h *AuthHandlers) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, bindError(err))
		return
	}

	if err := h.authSvc.Activate(c.Request.Context(), req.ActivationToken, req.ActivationCode); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account activated successfully.",
	})
}

// Login handles credential login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, bindError(err))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.sendTokens(c, http.StatusOK, result)
}

// SocialAuth handles login with a provider-asserted identity
func (h *AuthHandlers) SocialAuth(c *gin.Context) {
	var req SocialAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, bindError(err))
		return
	}

	result, err := h.authSvc.SocialLogin(c.Request.Context(), req.Email, req.Name, req.Avatar)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.sendTokens(c, http.StatusOK, result)
}

// Logout ends the caller's session if there is one. Cookies are always cleared.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if principal, ok := CurrentPrincipal(c); ok {
		if err := h.authSvc.Logout(c.Request.Context(), principal.ID); err != nil {
			RespondError(c, err)
			return
		}
	}

	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully.",
	})
}

// Refresh rotates the caller's token pair
func (h *AuthHandlers) Refresh(c *gin.Context) {
	result, err := h.authSvc.Refresh(c.Request.Context(), h.cookies.RefreshToken(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	h.cookies.SetTokens(c, result)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// Me returns the current principal, or a null user for anonymous callers.
// withCache=true reads the stored account instead of the cached snapshot.
func (h *AuthHandlers) Me(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "user": nil})
		return
	}

	fromStore := c.Query("withCache") == "true"
	user, err := h.accountSvc.Profile(c.Request.Context(), principal, fromStore)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthHandlers) sendTokens(c *gin.Context, status int, result *domain.AuthResult) {
	h.cookies.SetTokens(c, result)
	c.JSON(status, gin.H{
		"success":      true,
		"user":         result.Principal,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}
