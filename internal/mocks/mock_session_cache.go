package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/elearnauth/domain"
)

// MockSessionCache implements domain.SessionCache in memory and records TTLs
type MockSessionCache struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc         func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetIfExistsFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	DeleteFunc      func(ctx context.Context, key string) error

	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

// NewMockSessionCache creates a new MockSessionCache with default behaviors
func NewMockSessionCache() *MockSessionCache {
	return &MockSessionCache{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

// Get returns the stored value or domain.ErrCacheMiss
func (m *MockSessionCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return append([]byte(nil), v...), nil
}

// Set stores a value
func (m *MockSessionCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	m.ttls[key] = ttl
	return nil
}

// SetIfExists stores a value only over an existing key
func (m *MockSessionCache) SetIfExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if m.SetIfExistsFunc != nil {
		return m.SetIfExistsFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return false, nil
	}
	m.data[key] = append([]byte(nil), value...)
	m.ttls[key] = ttl
	return true, nil
}

// Delete removes a value
func (m *MockSessionCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.ttls, key)
	return nil
}

// TTL returns the TTL last used for key
func (m *MockSessionCache) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[key]
}

// Compile-time interface compliance verification
var _ domain.SessionCache = (*MockSessionCache)(nil)
