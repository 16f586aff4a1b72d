package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/logging"
)

const (
	activationSubject  = "Account Activation"
	activationTemplate = "activation"
)

// AuthConfig holds session manager policy
type AuthConfig struct {
	RequireVerified bool
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	accounts    domain.AccountRepository
	sessions    domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	activation  domain.ActivationService
	mailer      domain.MailSender
	audit       domain.AuditLogger
	log         logging.Logger
	config      AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	accounts domain.AccountRepository,
	sessions domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	activation domain.ActivationService,
	mailer domain.MailSender,
	audit domain.AuditLogger,
	log logging.Logger,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		accounts:    accounts,
		sessions:    sessions,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		activation:  activation,
		mailer:      mailer,
		audit:       audit,
		log:         log.With("component", "auth"),
		config:      config,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.RegistrationResult, error) {
	email = normalizeEmail(email)
	if err := checkField("name", name, nameRules); err != nil {
		return nil, err
	}
	if err := checkField("email", email, emailRules); err != nil {
		return nil, err
	}
	if err := checkField("password", password, passwordRules); err != nil {
		return nil, err
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	ticket, err := s.activation.Issue(email)
	if err != nil {
		s.discard(ctx, account)
		return nil, fmt.Errorf("failed to issue activation ticket: %w", err)
	}

	data := map[string]any{
		"name":           name,
		"activationCode": ticket.Code,
	}
	if err := s.mailer.Send(ctx, email, activationSubject, activationTemplate, data); err != nil {
		s.discard(ctx, account)
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, account.ID).
			WithEmail(email).WithError(err))
		if errors.Is(err, domain.ErrDeliveryFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, account.ID).WithEmail(email))
	return &domain.RegistrationResult{
		Email:           email,
		ActivationToken: ticket.Token,
	}, nil
}

// discard removes an account whose activation mail never went out so the address can register again
func (s *AuthServiceImpl) discard(ctx context.Context, account *domain.Account) {
	if err := s.accounts.Delete(ctx, account.ID); err != nil {
		s.log.Error(ctx, "failed to roll back registration", "account_id", account.ID, "error", err)
	}
}

// Activate implements domain.AuthService
func (s *AuthServiceImpl) Activate(ctx context.Context, activationToken, code string) error {
	if activationToken == "" || code == "" {
		return fmt.Errorf("%w: activation token and code are required", domain.ErrValidation)
	}

	email, err := s.activation.Verify(activationToken, code)
	if err != nil {
		return err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.IsVerified {
		return domain.ErrAlreadyVerified
	}
	if err := s.accounts.MarkVerified(ctx, account.ID); err != nil {
		return fmt.Errorf("failed to verify account: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserActivationEvent, account.ID).WithEmail(email))
	return nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: please enter email and password", domain.ErrValidation)
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, "", email, domain.ErrInvalidCredentials)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	// social accounts carry no hash and can never pass credential login
	if !account.HasPassword() || !s.passwordSvc.Verify(account.PasswordHash, password) {
		s.loginFailed(ctx, account.ID, email, domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	if s.config.RequireVerified && !account.IsVerified {
		s.loginFailed(ctx, account.ID, email, domain.ErrAccountNotVerified)
		return nil, domain.ErrAccountNotVerified
	}

	result, err := s.establish(ctx, account)
	if err != nil {
		return nil, err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, account.ID).
		WithEmail(email).WithMetadata("method", "password"))
	return result, nil
}

func (s *AuthServiceImpl) loginFailed(ctx context.Context, accountID, email string, err error) {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, accountID).
		WithEmail(email).WithError(err))
}

// SocialLogin implements domain.AuthService
func (s *AuthServiceImpl) SocialLogin(ctx context.Context, email, name, avatar string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if err := checkField("email", email, emailRules); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		account, err = s.createSocialAccount(ctx, email, name, avatar)
	}
	if err != nil {
		return nil, err
	}

	result, err := s.establish(ctx, account)
	if err != nil {
		return nil, err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, account.ID).
		WithEmail(email).WithMetadata("method", "social"))
	return result, nil
}

func (s *AuthServiceImpl) createSocialAccount(ctx context.Context, email, name, avatar string) (*domain.Account, error) {
	account := &domain.Account{
		Name:       name,
		Email:      email,
		Role:       domain.RoleUser,
		AvatarURL:  avatar,
		IsVerified: true,
	}
	err := s.accounts.Create(ctx, account)
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		// a concurrent social login created it first
		return s.accounts.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, account.ID).
		WithEmail(email).WithMetadata("method", "social"))
	return account, nil
}

// Refresh implements domain.AuthService. A missing session is the forced-logout signal.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrRefreshFailed, domain.ErrTokenInvalid)
	}

	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
	}

	principal, err := s.sessions.Find(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
		}
		s.log.Error(ctx, "session lookup failed", "account_id", claims.AccountID, "error", err)
		return nil, err
	}

	result, err := s.mint(principal)
	if err != nil {
		return nil, err
	}
	// a logout landing after Find must win
	replaced, err := s.sessions.Replace(ctx, principal)
	if err != nil {
		s.log.Error(ctx, "failed to rewrite session", "account_id", principal.ID, "error", err)
		return nil, err
	}
	if !replaced {
		return nil, fmt.Errorf("%w: %w", domain.ErrRefreshFailed, domain.ErrSessionNotFound)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, principal.ID))
	s.log.Info(ctx, "session refreshed", "account_id", principal.ID)
	return result, nil
}

// Logout implements domain.AuthService. Logging out without a session is not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context, accountID string) error {
	if accountID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, accountID); err != nil {
		s.log.Error(ctx, "failed to delete session", "account_id", accountID, "error", err)
		return err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, accountID))
	return nil
}

// establish snapshots the account and opens a session for it
func (s *AuthServiceImpl) establish(ctx context.Context, account *domain.Account) (*domain.AuthResult, error) {
	return s.issue(ctx, domain.NewPrincipal(account))
}

// issue mints a token pair and writes the session entry, re-arming its TTL
func (s *AuthServiceImpl) issue(ctx context.Context, principal *domain.Principal) (*domain.AuthResult, error) {
	result, err := s.mint(principal)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, principal); err != nil {
		s.log.Error(ctx, "failed to write session", "account_id", principal.ID, "error", err)
		return nil, err
	}
	return result, nil
}

func (s *AuthServiceImpl) mint(principal *domain.Principal) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &domain.AuthResult{
		Principal:    principal,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    s.tokenSvc.AccessTTL(),
		RefreshTTL:   s.tokenSvc.RefreshTTL(),
	}, nil
}
