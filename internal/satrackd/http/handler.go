// Package http serves the satrackd relay: a first-party event endpoint and
// an optional reverse proxy that records pageviews for an upstream site.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/wrale/wrale-analytics/internal/satrackd/ratelimit"
	"github.com/wrale/wrale-analytics/pkg/analytics"
	"github.com/wrale/wrale-analytics/pkg/analytics/request"
)

// EventPath is where browsers and backends post custom events
const EventPath = "/simple/event"

// Tracker is the subset of analytics.Tracker the relay uses
type Tracker interface {
	TrackEvent(ctx context.Context, name string, src request.Source, opts analytics.Options) error
	TrackPageview(ctx context.Context, r *http.Request, opts analytics.Options) error
}

// Options configures the relay handler
type Options struct {
	// Defaults are applied to every tracked pageview and event
	Defaults analytics.Options
	// SkipBots disables pageview tracking for crawler user agents
	SkipBots bool
	// Upstream receives every request not handled by the relay itself
	Upstream http.Handler
}

// Handler encapsulates the relay's HTTP API
type Handler struct {
	tracker Tracker
	limiter ratelimit.Service
	opts    Options
	logger  zerolog.Logger
}

// NewHandler creates a relay handler. limiter may be nil to disable rate limiting.
func NewHandler(tracker Tracker, limiter ratelimit.Service, opts Options, logger zerolog.Logger) *Handler {
	return &Handler{
		tracker: tracker,
		limiter: limiter,
		opts:    opts,
		logger:  logger.With().Str("component", "relay-http").Logger(),
	}
}

// Router returns the relay router
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestIDHeaderMiddleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logMiddleware(h.logger))

	r.Get("/healthz", h.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		if h.limiter != nil {
			r.Use(ratelimit.Middleware(h.limiter, ratelimit.EventRelayLimit, h.logger))
		}
		r.Post(EventPath, h.handleTrackEvent)
	})

	if h.opts.Upstream != nil {
		pv := Pageviews(h.tracker, PageviewOptions{
			Defaults: h.opts.Defaults,
			SkipBots: h.opts.SkipBots,
		}, h.logger)
		r.With(pv).Handle("/*", h.opts.Upstream)
	}

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}
