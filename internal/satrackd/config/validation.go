package config

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/rs/zerolog"

	apperrors "github.com/wrale/wrale-analytics/internal/errors"
)

func (c *Config) validate() error {
	const op = "config.validate"

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return apperrors.InvalidInput(op, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}
	if (c.Server.TLSCert != "") != (c.Server.TLSKey != "") {
		return apperrors.InvalidInput(op, "both TLS cert and key must be provided")
	}
	if u, err := url.Parse(c.Tracking.Endpoint); err != nil || u.Host == "" {
		return apperrors.InvalidInput(op, fmt.Sprintf("invalid collection endpoint: %q", c.Tracking.Endpoint))
	}
	if c.Tracking.Timeout <= 0 {
		return apperrors.InvalidInput(op, "tracking timeout must be positive")
	}
	for _, p := range c.Tracking.ExcludedPaths {
		if _, err := regexp.Compile(p); err != nil {
			return apperrors.InvalidInput(op, fmt.Sprintf("invalid excluded path pattern %q: %v", p, err))
		}
	}
	if c.Proxy.Upstream != "" {
		if u, err := url.Parse(c.Proxy.Upstream); err != nil || u.Scheme == "" || u.Host == "" {
			return apperrors.InvalidInput(op, fmt.Sprintf("invalid upstream URL: %q", c.Proxy.Upstream))
		}
	}
	if c.RateLimit.Rate < 0 || c.RateLimit.BurstSize < 0 {
		return apperrors.InvalidInput(op, "rate limit values must not be negative")
	}
	if c.RateLimit.Rate > 0 && c.RateLimit.Period <= 0 {
		return apperrors.InvalidInput(op, "rate limit period must be positive")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return apperrors.InvalidInput(op, fmt.Sprintf("invalid log level: %q", c.Log.Level))
	}
	return nil
}
