package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/healthdemo/pkg/health"
	"github.com/dmitrymomot/healthdemo/pkg/logger"
)

// Config is the service configuration, read from environment variables.
type Config struct {
	HTTP    HTTPConfig
	Log     logger.Config
	Health  HealthConfig
	Metrics MetricsConfig

	groups []health.Group
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Address         string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// DrainDelay keeps serving after readiness flips to REFUSING_TRAFFIC on shutdown.
	DrainDelay time.Duration `env:"SHUTDOWN_DRAIN_DELAY" envDefault:"0s"`
}

// HealthConfig holds health endpoint settings.
type HealthConfig struct {
	BasePath    string        `env:"HEALTH_BASE_PATH" envDefault:"/actuator/health"`
	ShowDetails string        `env:"HEALTH_SHOW_DETAILS" envDefault:"never"`
	Timeout     time.Duration `env:"HEALTH_TIMEOUT" envDefault:"5s"`
	CacheTTL    time.Duration `env:"HEALTH_CACHE_TTL" envDefault:"0s"`
	GroupsFile  string        `env:"HEALTH_GROUPS_FILE"`
	// LogProbes enables access log records for probe requests.
	LogProbes bool `env:"HEALTH_LOG_PROBES" envDefault:"false"`
}

// MetricsConfig holds Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/actuator/prometheus"`
}

// Load reads the given .env files, then the process environment, and
// parses the result. Missing files are skipped. Variables already set in
// the process environment take precedence over file values, and later
// files override earlier ones.
func Load(files ...string) (*Config, error) {
	environ := make(map[string]string)

	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read env file %s: %w", file, err)
		}
		for k, v := range values {
			environ[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}

	return FromEnvironment(environ)
}

// FromEnvironment parses configuration from environ instead of the process
// environment, loads the health groups file if one is set, and validates
// the result.
func FromEnvironment(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	groups, err := loadGroups(cfg.Health.GroupsFile)
	if err != nil {
		return nil, err
	}
	cfg.groups = groups

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HealthGroups returns the probe groups: the defaults merged with the
// groups file, sorted by name.
func (c *Config) HealthGroups() []health.Group {
	if c.groups == nil {
		return DefaultGroups()
	}
	out := make([]health.Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// ShowDetails returns the parsed show-details mode.
func (c *Config) ShowDetails() health.ShowDetails {
	v, _ := health.ParseShowDetails(c.Health.ShowDetails)
	return v
}

// Validate reports invalid settings.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if _, err := health.ParseShowDetails(c.Health.ShowDetails); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Health.BasePath, "/") {
		return fmt.Errorf("%w: HEALTH_BASE_PATH=%q", ErrInvalidPath, c.Health.BasePath)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: METRICS_PATH=%q", ErrInvalidPath, c.Metrics.Path)
	}
	if c.Health.Timeout <= 0 {
		return fmt.Errorf("%w: HEALTH_TIMEOUT=%s", ErrInvalidDuration, c.Health.Timeout)
	}
	if c.Health.CacheTTL < 0 {
		return fmt.Errorf("%w: HEALTH_CACHE_TTL=%s", ErrInvalidDuration, c.Health.CacheTTL)
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT=%s", ErrInvalidDuration, c.HTTP.ShutdownTimeout)
	}
	if c.HTTP.DrainDelay < 0 || c.HTTP.DrainDelay >= c.HTTP.ShutdownTimeout {
		return fmt.Errorf("%w: SHUTDOWN_DRAIN_DELAY=%s must be below SHUTDOWN_TIMEOUT", ErrInvalidDuration, c.HTTP.DrainDelay)
	}
	return nil
}
