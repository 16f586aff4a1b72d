package httpx

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/http/handlers"
	"github.com/you/elearnauth/internal/http/middleware"
	"github.com/you/elearnauth/internal/logging"
)

// RouterDeps is everything BuildRouter mounts
type RouterDeps struct {
	BasePath       string
	RequestTimeout time.Duration
	Log            logging.Logger

	Auth     *handlers.AuthHandlers
	Users    *handlers.UserHandlers
	Policies *handlers.PolicyHandlers
	AuthMW   *middleware.AuthMW
	Casbin   *middleware.CasbinMW
}

func BuildRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group(d.BasePath)
	if d.RequestTimeout > 0 {
		api.Use(middleware.RequestTimeout(d.RequestTimeout))
	}

	api.POST("/register", d.Auth.Register)
	api.POST("/activate", d.Auth.Activate)
	api.POST("/login", d.Auth.Login)
	api.POST("/social-auth", d.Auth.SocialAuth)
	api.GET("/refresh", d.Auth.Refresh)
	api.GET("/me", d.AuthMW.OptionalAuthenticate(), d.Auth.Me)
	api.POST("/logout", d.AuthMW.TryRefresh(), d.AuthMW.Identify(), d.Auth.Logout)

	authed := api.Group("", d.AuthMW.Refresh(), d.AuthMW.Authenticate())
	authed.PUT("/update-user", d.Users.UpdateName)
	authed.PUT("/update-user-password", d.Users.UpdatePassword)
	authed.PUT("/update-user-avatar", d.Users.UpdateAvatar)

	// role gate first, then the stored route policies
	adm := authed.Group("", d.AuthMW.RequireRoles(domain.RoleAdmin), d.Casbin.Enforce())
	adm.GET("/get-all-users", d.Users.List)
	adm.PUT("/update-user-role", d.Users.UpdateRole)
	adm.DELETE("/delete-user/:id", d.Users.Delete)

	pol := adm.Group("/admin/policies")
	pol.GET("", d.Policies.List)
	pol.POST("", d.Policies.Add)
	pol.DELETE("", d.Policies.Remove)

	return r
}
