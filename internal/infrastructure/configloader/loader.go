package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAnalysisURL overrides analysis.baseURL when set.
const EnvAnalysisURL = "ANALYSIS_API_URL"

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// AnalysisConfig holds the analysis service client configuration.
type AnalysisConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateLimitBurst       int     `yaml:"rateLimitBurst"`
}

// CacheConfig holds TTLs of the report cache and the HTTP session store.
type CacheConfig struct {
	ReportTTLSeconds       int `yaml:"reportTTLSeconds"`
	SessionTTLMinutes      int `yaml:"sessionTTLMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// DemoConfig holds demo-mode settings.
type DemoConfig struct {
	// Seed makes synthesized reports reproducible; 0 seeds from the clock.
	Seed uint64 `yaml:"seed"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"max_concurrent_routines"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecPath string `yaml:"specPath"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Cache       CacheConfig       `yaml:"cache"`
	Demo        DemoConfig        `yaml:"demo"`
	Performance PerformanceConfig `yaml:"performance"`
	Swagger     SwaggerConfig     `yaml:"swagger"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
// A missing file yields the defaults. An absent analysis base URL is not an
// error here; the report client reports it on the first request.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
			}
		}
	}

	if url := os.Getenv(EnvAnalysisURL); url != "" {
		cfg.Analysis.BaseURL = url
	}
	cfg.Analysis.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Analysis.BaseURL), "/")

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		// Must outlive analysis.requestTimeoutMillis, the analyze handler blocks on the request.
		cfg.Server.WriteTimeoutSeconds = 60
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 120
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Analysis.RequestTimeoutMillis <= 0 {
		cfg.Analysis.RequestTimeoutMillis = 30000 // 30 seconds
	}
	if cfg.Analysis.RateLimitPerSecond > 0 && cfg.Analysis.RateLimitBurst <= 0 {
		cfg.Analysis.RateLimitBurst = 1
	}

	if cfg.Cache.ReportTTLSeconds < 0 {
		cfg.Cache.ReportTTLSeconds = 0
	}
	if cfg.Cache.SessionTTLMinutes <= 0 {
		cfg.Cache.SessionTTLMinutes = 30
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}

	if cfg.Swagger.SpecPath == "" {
		cfg.Swagger.SpecPath = "./docs/swagger.yaml"
	}
}

// RequestTimeout is the bound applied to each analysis request.
func (c AnalysisConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

// ReportTTL is the report cache TTL; zero disables the cache.
func (c CacheConfig) ReportTTL() time.Duration {
	return time.Duration(c.ReportTTLSeconds) * time.Second
}

// SessionTTL is the idle lifetime of an HTTP session.
func (c CacheConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// CleanupInterval is how often expired cache entries are purged.
func (c CacheConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMinutes) * time.Minute
}
