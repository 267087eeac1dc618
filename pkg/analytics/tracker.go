// Package analytics builds Simple Analytics pageview and event payloads from
// incoming requests and hands them to a Dispatcher.
package analytics

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	analyticserrors "github.com/wrale/wrale-analytics/pkg/analytics/errors"
	"github.com/wrale/wrale-analytics/pkg/analytics/headers"
	"github.com/wrale/wrale-analytics/pkg/analytics/privacy"
	"github.com/wrale/wrale-analytics/pkg/analytics/request"
	"github.com/wrale/wrale-analytics/pkg/analytics/utm"
)

// ReservedPaths matches the script and relay routes served by the analytics
// proxy itself. They are excluded from pageviews regardless of Config.
var ReservedPaths = []string{`^/(proxy\.js|auto-events\.js|simple/.*)$`}

// Dispatcher delivers an assembled payload
type Dispatcher interface {
	Send(ctx context.Context, payload v1alpha1.Payload) error
}

// Config is the process-wide tracker configuration
type Config struct {
	// Hostname is used when a call does not pass one
	Hostname string
	// ExcludedPaths are regular expressions checked in addition to
	// ReservedPaths; matching paths are never recorded as pageviews.
	ExcludedPaths []string
}

// Options configures a single tracking call
type Options struct {
	// Hostname overrides Config.Hostname
	Hostname string
	// Metadata is attached to custom events
	Metadata v1alpha1.Metadata
	// IgnoreMetrics suppresses individual signals
	IgnoreMetrics v1alpha1.IgnoreMetrics
	// CollectDNT tracks even when the client sent a Do-Not-Track signal
	CollectDNT bool
	// StrictUTM validates utm_* values; nil means true
	StrictUTM *bool
}

func (o Options) strictUTM() bool {
	return o.StrictUTM == nil || *o.StrictUTM
}

// Tracker assembles payloads. It holds no per-call state and is safe for
// concurrent use.
type Tracker struct {
	hostname   string
	excluded   []*regexp.Regexp
	dispatcher Dispatcher
	logger     zerolog.Logger
}

// New creates a Tracker
func New(cfg Config, dispatcher Dispatcher, logger zerolog.Logger) (*Tracker, error) {
	if dispatcher == nil {
		return nil, analyticserrors.InvalidInput("analytics.New", "dispatcher is required")
	}

	patterns := make([]string, 0, len(ReservedPaths)+len(cfg.ExcludedPaths))
	patterns = append(patterns, ReservedPaths...)
	patterns = append(patterns, cfg.ExcludedPaths...)
	excluded := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid excluded path pattern %q: %w", p, err)
		}
		excluded = append(excluded, re)
	}

	return &Tracker{
		hostname:   cfg.Hostname,
		excluded:   excluded,
		dispatcher: dispatcher,
		logger:     logger.With().Str("component", "tracker").Logger(),
	}, nil
}

func (t *Tracker) resolveHostname(opts Options) (string, bool) {
	if opts.Hostname != "" {
		return opts.Hostname, true
	}
	if t.hostname != "" {
		return t.hostname, true
	}
	t.logger.Error().Err(analyticserrors.ErrMissingHostname).Msg("tracking skipped")
	return "", false
}

// Excluded reports whether path is an internal route that is never a pageview
func (t *Tracker) Excluded(path string) bool {
	for _, re := range t.excluded {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// TrackEvent sends a custom event. Configuration problems and privacy
// opt-outs are logged and return nil; only delivery transport errors are
// returned.
func (t *Tracker) TrackEvent(ctx context.Context, name string, src request.Source, opts Options) error {
	hostname, ok := t.resolveHostname(opts)
	if !ok {
		return nil
	}

	n := request.Normalize(src)

	if privacy.DoNotTrackEnabled(n.Headers) && !opts.CollectDNT {
		t.logger.Info().Str("event", name).Msg("do not track enabled, not tracking event")
		return nil
	}

	payload := v1alpha1.NewEvent(hostname, name)
	payload.Metadata = opts.Metadata
	payload.Signals = headers.Extract(n.Headers, opts.IgnoreMetrics)

	return t.dispatcher.Send(ctx, payload)
}

// TrackPageview sends a pageview for r. Only GET requests to non-excluded
// paths are recorded.
func (t *Tracker) TrackPageview(ctx context.Context, r *http.Request, opts Options) error {
	hostname, ok := t.resolveHostname(opts)
	if !ok {
		return nil
	}

	if r == nil || r.Method != http.MethodGet {
		return nil
	}

	n := request.Normalize(request.FromRequest{Request: r})

	if privacy.DoNotTrackEnabled(n.Headers) && !opts.CollectDNT {
		t.logger.Info().Str("path", n.Path).Msg("do not track enabled, not tracking pageview")
		return nil
	}

	if t.Excluded(n.Path) {
		t.logger.Debug().Str("path", n.Path).Msg("excluded path, not tracking pageview")
		return nil
	}

	payload := v1alpha1.NewPageview(hostname, n.Path)
	payload.Signals = headers.Extract(n.Headers, opts.IgnoreMetrics)
	if n.HasQuery() && !opts.IgnoreMetrics.UTM {
		payload.UTM = utm.Parse(n.Query, utm.Options{Strict: opts.strictUTM()})
	}

	return t.dispatcher.Send(ctx, payload)
}
