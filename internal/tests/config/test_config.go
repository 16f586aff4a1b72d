package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/you/elearnauth/internal/config"
)

// testYAML mirrors a deployment config with deterministic secrets
const testYAML = `
app:
  environment: test
  gin_mode: test
  base_path: /api/v1
  request_timeout: 5s
jwt:
  access_secret: test-access-secret
  refresh_secret: test-refresh-secret
  access_ttl: 15m
  refresh_ttl: 72h
activation:
  secret: test-activation-secret
  ttl: 5m
  code_min: 1000
  code_max: 9999
cookie:
  same_site: lax
auth:
  bcrypt_cost: 4
`

// LoadTestConfig loads configuration specifically for end-to-end tests through the regular loader
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(testYAML), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Failed to load test configuration: %v", err)
	}
	return cfg
}
