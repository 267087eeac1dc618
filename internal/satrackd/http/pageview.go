package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog"

	"github.com/wrale/wrale-analytics/pkg/analytics"
)

// PageviewOptions configures the Pageviews middleware
type PageviewOptions struct {
	// Defaults are passed to every TrackPageview call
	Defaults analytics.Options
	// SkipBots ignores requests from crawlers
	SkipBots bool
}

// Pageviews records a pageview for every GET request passing through and
// then serves it with next. Tracking runs in the background on a copy of
// the request and never changes the response.
func Pageviews(tracker Tracker, opts PageviewOptions, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && !(opts.SkipBots && isBot(r.UserAgent())) {
				reqID := middleware.GetReqID(r.Context())
				clone := r.Clone(context.WithoutCancel(r.Context()))

				go func() {
					if err := tracker.TrackPageview(clone.Context(), clone, opts.Defaults); err != nil {
						logger.Warn().Err(err).
							Str("requestId", reqID).
							Str("path", clone.URL.Path).
							Msg("pageview delivery failed")
					}
				}()
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isBot(ua string) bool {
	if ua == "" {
		return false
	}
	return useragent.Parse(ua).Bot
}
