package mocks

import (
	"strings"
	"sync"

	"github.com/you/elearnauth/domain"
)

// hashPrefix marks mock hashes; "hashed_pw" verifies "pw"
const hashPrefix = "hashed_"

// MockPasswordService implements domain.PasswordService with a reversible fake hash.
// It counts calls so tests can assert a rejected request never reached hashing.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool

	mu       sync.Mutex
	hashes   int
	verifies int
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash returns the fake hash of password
func (m *MockPasswordService) Hash(password string) (string, error) {
	m.mu.Lock()
	m.hashes++
	m.mu.Unlock()
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return hashPrefix + password, nil
}

// Verify reports whether hashedPassword is the fake hash of password.
// Social accounts carry no hash and never verify.
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	m.mu.Lock()
	m.verifies++
	m.mu.Unlock()
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, hashPrefix) {
		return false
	}
	return strings.TrimPrefix(hashedPassword, hashPrefix) == password
}

// Calls returns how many hashes and verifications were performed
func (m *MockPasswordService) Calls() (hashes, verifies int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hashes, m.verifies
}

var _ domain.PasswordService = (*MockPasswordService)(nil)
