package configloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	t.Setenv(EnvAnalysisURL, "")
	path := writeConfig(t, `
server:
  port: "9090"
logging:
  level: debug
  development: true
analysis:
  baseURL: "http://localhost:8000/"
  requestTimeoutMillis: 1500
  rateLimitPerSecond: 2
cache:
  reportTTLSeconds: 120
performance:
  max_concurrent_routines: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "http://localhost:8000", cfg.Analysis.BaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Analysis.RequestTimeout())
	assert.Equal(t, 2.0, cfg.Analysis.RateLimitPerSecond)
	assert.Equal(t, 1, cfg.Analysis.RateLimitBurst)
	assert.Equal(t, 2*time.Minute, cfg.Cache.ReportTTL())
	assert.Equal(t, 4, cfg.Performance.MaxConcurrentRoutines)
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv(EnvAnalysisURL, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Analysis.BaseURL, "missing endpoint is not a load error")
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Analysis.RequestTimeout())
	assert.Equal(t, time.Duration(0), cfg.Cache.ReportTTL())
	assert.Equal(t, 30*time.Minute, cfg.Cache.SessionTTL())
	assert.Equal(t, 10*time.Minute, cfg.Cache.CleanupInterval())
	assert.Equal(t, 10, cfg.Performance.MaxConcurrentRoutines)
	assert.Equal(t, "./docs/swagger.yaml", cfg.Swagger.SpecPath)
}

func TestLoad_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv(EnvAnalysisURL, "https://risk.example.com/")
	path := writeConfig(t, "analysis:\n  baseURL: http://ignored\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://risk.example.com", cfg.Analysis.BaseURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config data")
}
