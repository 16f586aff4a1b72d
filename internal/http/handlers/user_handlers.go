package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/domain"
)

// UserHandlers serves profile mutations and admin account management
type UserHandlers struct {
	accountSvc domain.AccountService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(accountSvc domain.AccountService) *UserHandlers {
	return &UserHandlers{accountSvc: accountSvc}
}

type updateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

type updateRoleRequest struct {
	ID   string `json:"id" binding:"required"`
	Role string `json:"role" binding:"required"`
}

// AccountView is the admin-facing account representation; it never carries the hash
type AccountView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Avatar     string    `json:"avatar,omitempty"`
	IsVerified bool      `json:"is_verified"`
	Courses    []string  `json:"courses"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newAccountView(a *domain.Account) AccountView {
	courses := a.Courses
	if courses == nil {
		courses = []string{}
	}
	return AccountView{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role,
		Avatar:     a.AvatarURL,
		IsVerified: a.IsVerified,
		Courses:    courses,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// UpdateName renames the caller
func (h *UserHandlers) UpdateName(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, bindError(err))
		return
	}

	user, err := h.accountSvc.UpdateName(c.Request.Context(), principal.ID, req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// UpdatePassword changes the caller's password after checking the old one
func (h *UserHandlers) UpdatePassword(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, bindError(err))
		return
	}

	user, err := h.accountSvc.UpdatePassword(c.Request.Context(), principal.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateAvatar stores a new avatar URL for the caller
func (h *UserHandlers) UpdateAvatar(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, bindError(err))
		return
	}

	user, err := h.accountSvc.UpdateAvatar(c.Request.Context(), principal.ID, req.Avatar)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "avatar": user.Avatar})
}

// List returns every account, newest first
func (h *UserHandlers) List(c *gin.Context) {
	accounts, err := h.accountSvc.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	users := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, newAccountView(a))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// UpdateRole changes another account's role
func (h *UserHandlers) UpdateRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, bindError(err))
		return
	}

	account, err := h.accountSvc.UpdateRole(c.Request.Context(), req.ID, req.Role)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": newAccountView(account)})
}

// Delete removes an account and its session
func (h *UserHandlers) Delete(c *gin.Context) {
	if err := h.accountSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}
