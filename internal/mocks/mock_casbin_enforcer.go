package mocks

import (
	"regexp"
	"strings"

	"github.com/you/elearnauth/domain"
)

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error
	SaveCalls        int
	policies         [][]string
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with default behaviors
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

// AddPolicy adds a new policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := toRule(params)
	if m.indexOf(rule) >= 0 {
		return false, nil
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

// RemovePolicy removes a policy rule
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	i := m.indexOf(toRule(params))
	if i < 0 {
		return false, nil
	}
	m.policies = append(m.policies[:i], m.policies[i+1:]...)
	return true, nil
}

// Enforce checks a request against stored policies. Objects ending in /* match by prefix,
// :name segments match any one segment and actions are treated as regular expressions.
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	req := toRule(rvals)
	if len(req) < 3 {
		return false, nil
	}
	for _, p := range m.policies {
		if len(p) < 3 || p[0] != req[0] {
			continue
		}
		if !matchObject(p[1], req[1]) {
			continue
		}
		if ok, _ := regexp.MatchString("^(?:"+p[2]+")$", req[2]); ok {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = append([]string(nil), policy...)
	}
	return result, nil
}

// SavePolicy saves all policies
func (m *MockCasbinEnforcer) SavePolicy() error {
	m.SaveCalls++
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

// SetPolicies sets the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, policy := range policies {
		m.policies[i] = append([]string(nil), policy...)
	}
}

func (m *MockCasbinEnforcer) indexOf(rule []string) int {
	for i, p := range m.policies {
		if strings.Join(p, "\x00") == strings.Join(rule, "\x00") {
			return i
		}
	}
	return -1
}

func toRule(params []interface{}) []string {
	rule := make([]string, 0, len(params))
	for _, param := range params {
		if s, ok := param.(string); ok {
			rule = append(rule, s)
		}
	}
	return rule
}

func matchObject(pattern, obj string) bool {
	if strings.HasSuffix(pattern, "/*") {
		return strings.HasPrefix(obj, strings.TrimSuffix(pattern, "*"))
	}
	want := strings.Split(pattern, "/")
	got := strings.Split(obj, "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if strings.HasPrefix(want[i], ":") && got[i] != "" {
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
