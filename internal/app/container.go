package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/config"
	httpx "github.com/you/elearnauth/internal/http"
	"github.com/you/elearnauth/internal/http/handlers"
	"github.com/you/elearnauth/internal/http/middleware"
	"github.com/you/elearnauth/internal/infrastructure/audit"
	"github.com/you/elearnauth/internal/infrastructure/auth"
	"github.com/you/elearnauth/internal/infrastructure/database"
	"github.com/you/elearnauth/internal/infrastructure/notifications"
	"github.com/you/elearnauth/internal/infrastructure/repositories"
	"github.com/you/elearnauth/internal/logging"
	"github.com/you/elearnauth/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    logging.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	Accounts domain.AccountRepository
	Sessions domain.SessionRepository

	// Services
	PasswordSvc   domain.PasswordService
	TokenSvc      domain.TokenService
	ActivationSvc domain.ActivationService
	Mailer        domain.MailSender
	Audit         domain.AuditLogger
	AuthSvc       domain.AuthService
	AccountSvc    domain.AccountService
	Gate          domain.AuthorizationGate
	PolicySvc     *services.PolicyServiceImpl
}

// Option overrides a dependency before the services are built
type Option func(*Container)

// WithMailer replaces the configured mail sender
func WithMailer(m domain.MailSender) Option {
	return func(c *Container) { c.Mailer = m }
}

// NewContainer opens the database and cache named in cfg and wires everything on top of them
func NewContainer(cfg *config.Config, log logging.Logger, opts ...Option) (*Container, error) {
	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	return NewContainerWith(cfg, log, db, rdb, opts...)
}

// NewContainerWith wires the service on already opened connections.
// The schema is migrated and default route policies are seeded.
func NewContainerWith(cfg *config.Config, log logging.Logger, db *gorm.DB, rdb *redis.Client, opts ...Option) (*Container, error) {
	c := &Container{Config: cfg, Log: log, DB: db, RedisClient: rdb}
	for _, opt := range opts {
		opt(c)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	// Initialize repositories
	c.Accounts = repositories.NewAccountRepository(db)
	c.Sessions = repositories.NewSessionRepository(repositories.NewRedisSessionCache(rdb), cfg.RefreshTTL)

	if err := c.initServices(); err != nil {
		return nil, err
	}
	if err := c.initPolicies(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initServices() error {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	c.TokenSvc = auth.NewJWTService(auth.JWTConfig{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		Issuer:        cfg.JWTIssuer,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})
	c.ActivationSvc = services.NewActivationService(services.ActivationConfig{
		Secret:  cfg.ActivationSecret,
		TTL:     cfg.ActivationTTL,
		CodeMin: cfg.CodeMin,
		CodeMax: cfg.CodeMax,
	})

	if err := c.initMailer(); err != nil {
		return err
	}

	c.Audit = audit.NewLogAuditLogger(c.Log)
	c.AuthSvc = services.NewAuthService(
		c.Accounts,
		c.Sessions,
		c.PasswordSvc,
		c.TokenSvc,
		c.ActivationSvc,
		c.Mailer,
		c.Audit,
		c.Log,
		services.AuthConfig{RequireVerified: cfg.RequireVerified},
	)
	c.AccountSvc = services.NewAccountService(c.Accounts, c.Sessions, c.PasswordSvc, c.Log)
	c.Gate = services.NewAuthorizationGate(c.TokenSvc, c.Sessions)
	return nil
}

// initMailer sends over SMTP when a host is configured and logs the mail otherwise
func (c *Container) initMailer() error {
	if c.Mailer != nil {
		return nil
	}
	templates, err := notifications.LoadTemplates()
	if err != nil {
		return fmt.Errorf("failed to load mail templates: %w", err)
	}

	cfg := c.Config
	if cfg.SMTPHost == "" {
		c.Log.Warn(context.Background(), "smtp host not configured, activation mail is logged instead of sent")
		c.Mailer = notifications.NewLogMailer(c.Log, templates)
		return nil
	}
	c.Mailer = notifications.NewSMTPMailer(notifications.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, templates)
	return nil
}

func (c *Container) initPolicies() error {
	cas, err := auth.NewCasbinService(c.DB)
	if err != nil {
		return fmt.Errorf("failed to start casbin: %w", err)
	}
	c.PolicySvc = services.NewPolicyService(cas.E)
	if err := c.PolicySvc.Seed(services.DefaultPolicies(c.Config.BasePath)); err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}
	return nil
}

// Router builds the HTTP handler for the container's services
func (c *Container) Router() *gin.Engine {
	cfg := c.Config
	cookies := handlers.NewCookieConfig(cfg.AccessCookie, cfg.RefreshCookie, cfg.CookieDomain, cfg.CookieSameSite, cfg.Production())

	return httpx.BuildRouter(httpx.RouterDeps{
		BasePath:       cfg.BasePath,
		RequestTimeout: cfg.RequestTimeout,
		Log:            c.Log,
		Auth:           handlers.NewAuthHandlers(c.AuthSvc, c.AccountSvc, cookies),
		Users:          handlers.NewUserHandlers(c.AccountSvc),
		Policies:       handlers.NewPolicyHandlers(c.PolicySvc),
		AuthMW:         middleware.NewAuthMW(c.AuthSvc, c.Gate, c.Audit, cookies),
		Casbin:         middleware.NewCasbinMW(c.PolicySvc, c.Audit),
	})
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
