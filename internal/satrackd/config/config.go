// Package config provides configuration management for the satrackd relay
package config

import (
	"time"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	"github.com/wrale/wrale-analytics/pkg/analytics"
	"github.com/wrale/wrale-analytics/pkg/analytics/client"
)

// Config holds all configuration for the relay
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Proxy     ProxyConfig     `yaml:"proxy"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
	TLSCert      string        `yaml:"tlsCert"`
	TLSKey       string        `yaml:"tlsKey"`
}

// TrackingConfig holds the tracker and dispatcher settings
type TrackingConfig struct {
	Hostname      string                 `yaml:"hostname"`
	Endpoint      string                 `yaml:"endpoint"`
	Timeout       time.Duration          `yaml:"timeout"`
	ExcludedPaths []string               `yaml:"excludedPaths"`
	CollectDNT    bool                   `yaml:"collectDnt"`
	StrictUTM     *bool                  `yaml:"strictUtm"`
	SkipBots      bool                   `yaml:"skipBots"`
	IgnoreMetrics v1alpha1.IgnoreMetrics `yaml:"ignoreMetrics"`
}

// ProxyConfig configures the upstream application pageviews are recorded for
type ProxyConfig struct {
	// Upstream is the base URL requests are forwarded to; empty disables proxying
	Upstream string `yaml:"upstream"`
}

// RateLimitConfig holds settings for the relay's event endpoint
type RateLimitConfig struct {
	Rate      int           `yaml:"rate"`
	Period    time.Duration `yaml:"period"`
	BurstSize int           `yaml:"burstSize"`
	// RedisAddr selects the Redis store; empty uses in-process counters
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
}

// LogConfig controls log output
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Tracking: TrackingConfig{
			Endpoint: client.DefaultEndpoint,
			Timeout:  client.DefaultTimeout,
		},
		RateLimit: RateLimitConfig{
			Rate:      60,
			Period:    time.Minute,
			BurstSize: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults and environment variables
func Load() (*Config, error) {
	cfg := Default()
	cfg.overlayEnv()
	return cfg, cfg.validate()
}

// Analytics returns the tracker configuration
func (c *Config) Analytics() analytics.Config {
	return analytics.Config{
		Hostname:      c.Tracking.Hostname,
		ExcludedPaths: c.Tracking.ExcludedPaths,
	}
}

// TrackingOptions returns the per-call defaults applied to every tracked request
func (c *Config) TrackingOptions() analytics.Options {
	return analytics.Options{
		IgnoreMetrics: c.Tracking.IgnoreMetrics,
		CollectDNT:    c.Tracking.CollectDNT,
		StrictUTM:     c.Tracking.StrictUTM,
	}
}

// overlayEnv overlays environment variables on top of file-based config
func (c *Config) overlayEnv() {
	// Server config
	if host := getEnv("SATRACK_SERVER_HOST", ""); host != "" {
		c.Server.Host = host
	}
	if port := getEnvAsInt("SATRACK_SERVER_PORT", 0); port != 0 {
		c.Server.Port = port
	}
	if readTimeout := getEnvAsDuration("SATRACK_SERVER_READ_TIMEOUT", 0); readTimeout != 0 {
		c.Server.ReadTimeout = readTimeout
	}
	if writeTimeout := getEnvAsDuration("SATRACK_SERVER_WRITE_TIMEOUT", 0); writeTimeout != 0 {
		c.Server.WriteTimeout = writeTimeout
	}
	if tlsCert := getEnv("SATRACK_TLS_CERT", ""); tlsCert != "" {
		c.Server.TLSCert = tlsCert
	}
	if tlsKey := getEnv("SATRACK_TLS_KEY", ""); tlsKey != "" {
		c.Server.TLSKey = tlsKey
	}

	// Tracking config - the hostname also honours the SDK-wide variable
	if hostname := getEnvMulti([]string{"SATRACK_HOSTNAME", "SIMPLE_ANALYTICS_HOSTNAME"}, ""); hostname != "" {
		c.Tracking.Hostname = hostname
	}
	if endpoint := getEnv("SATRACK_ENDPOINT", ""); endpoint != "" {
		c.Tracking.Endpoint = endpoint
	}
	if timeout := getEnvAsDuration("SATRACK_TIMEOUT", 0); timeout != 0 {
		c.Tracking.Timeout = timeout
	}
	if collect, ok := getEnvAsBool("SATRACK_COLLECT_DNT"); ok {
		c.Tracking.CollectDNT = collect
	}
	if strict, ok := getEnvAsBool("SATRACK_STRICT_UTM"); ok {
		c.Tracking.StrictUTM = &strict
	}
	if skip, ok := getEnvAsBool("SATRACK_SKIP_BOTS"); ok {
		c.Tracking.SkipBots = skip
	}

	// Proxy config
	if upstream := getEnv("SATRACK_UPSTREAM", ""); upstream != "" {
		c.Proxy.Upstream = upstream
	}

	// Rate limit config
	if rate := getEnvAsInt("SATRACK_RATE_LIMIT", 0); rate != 0 {
		c.RateLimit.Rate = rate
	}
	if period := getEnvAsDuration("SATRACK_RATE_LIMIT_PERIOD", 0); period != 0 {
		c.RateLimit.Period = period
	}
	if addr := getEnvMulti([]string{"SATRACK_REDIS_ADDR", "REDIS_ADDR"}, ""); addr != "" {
		c.RateLimit.RedisAddr = addr
	}
	if password := getEnvMulti([]string{"SATRACK_REDIS_PASSWORD", "REDIS_PASSWORD"}, ""); password != "" {
		c.RateLimit.RedisPassword = password
	}

	if level := getEnv("SATRACK_LOG_LEVEL", ""); level != "" {
		c.Log.Level = level
	}
}
