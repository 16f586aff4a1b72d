package services

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/you/elearnauth/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
	}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// adminRoutes are the account management and policy routes an admin reaches by default
var adminRoutes = []struct{ path, methods string }{
	{"/get-all-users", "GET"},
	{"/update-user-role", "PUT"},
	{"/delete-user/:id", "DELETE"},
	{"/admin/policies", "(GET)|(POST)|(DELETE)"},
}

// DefaultPolicies are seeded when the policy table is empty. Removing one
// through the policy routes closes that route to admins as well.
func DefaultPolicies(basePath string) [][]string {
	base := strings.TrimRight(basePath, "/")
	policies := make([][]string, 0, len(adminRoutes))
	for _, r := range adminRoutes {
		policies = append(policies, []string{domain.RoleAdmin, base + r.path, r.methods})
	}
	return policies
}

// Seed installs policies when none are stored yet
func (p *PolicyServiceImpl) Seed(policies [][]string) error {
	existing, err := p.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, rule := range policies {
		if len(rule) != 3 {
			return fmt.Errorf("%w: policy needs role, resource and action", domain.ErrValidation)
		}
		if _, err := p.enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
			return fmt.Errorf("failed to seed policy: %w", err)
		}
	}
	return p.enforcer.SavePolicy()
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if err := checkPolicy(role, resource, action); err != nil {
		return err
	}
	_, err := p.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if err := checkPolicy(role, resource, action); err != nil {
		return err
	}
	_, err := p.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

func checkPolicy(role, resource, action string) error {
	if role == "" || resource == "" || action == "" {
		return fmt.Errorf("%w: role, resource and action are required", domain.ErrValidation)
	}
	if !domain.ValidRole(role) {
		return fmt.Errorf("%w: policies apply to roles %s and %s", domain.ErrValidation, domain.RoleUser, domain.RoleAdmin)
	}
	if !strings.HasPrefix(resource, "/") {
		return fmt.Errorf("%w: resource must be a route path", domain.ErrValidation)
	}
	return nil
}
