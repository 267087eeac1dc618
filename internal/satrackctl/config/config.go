// Package config provides configuration management for the satrackctl CLI
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	"github.com/wrale/wrale-analytics/pkg/analytics/client"
)

// Config holds the CLI configuration
type Config struct {
	// Hostname is the tracked site used when --hostname is not given
	Hostname string `mapstructure:"hostname"`
	// Endpoint is the collection endpoint
	Endpoint string `mapstructure:"endpoint"`
	// Timeout bounds each delivery
	Timeout time.Duration `mapstructure:"timeout"`
	// CollectDNT tracks even when DNT headers are passed
	CollectDNT bool `mapstructure:"collect-dnt"`
	// StrictUTM validates utm_* values
	StrictUTM bool `mapstructure:"strict-utm"`
	// IgnoreMetrics suppresses individual signals
	IgnoreMetrics v1alpha1.IgnoreMetrics `mapstructure:"ignore-metrics"`

	// path is where Save writes the configuration
	path string
}

// Keys that may be changed with Set
var settableKeys = []string{"hostname", "endpoint", "timeout", "collect-dnt", "strict-utm"}

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".satrackctl/config.yaml"
	}
	return filepath.Join(home, ".satrackctl", "config.yaml")
}

func newViper(path string) *viper.Viper {
	v := viper.New()

	v.SetDefault("hostname", "")
	v.SetDefault("endpoint", client.DefaultEndpoint)
	v.SetDefault("timeout", client.DefaultTimeout)
	v.SetDefault("collect-dnt", false)
	v.SetDefault("strict-utm", true)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SATRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("hostname", "SATRACK_HOSTNAME", "SIMPLE_ANALYTICS_HOSTNAME")

	return v
}

// Load reads the configuration at path (DefaultConfigPath when empty).
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		if env := os.Getenv("SATRACKCTL_CONFIG"); env != "" {
			path = env
		} else {
			path = DefaultConfigPath()
		}
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.path = path

	return &cfg, nil
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// Set updates a single key in the config file, creating it if needed
func Set(path, key, value string) error {
	valid := false
	for _, k := range settableKeys {
		if k == key {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(settableKeys, ", "))
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error reading config: %w", err)
		}
	}

	v.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}
