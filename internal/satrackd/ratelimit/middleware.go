package ratelimit

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Middleware rejects requests over the limit registered for limitType with
// 429 Too Many Requests. Store failures let the request through.
func Middleware(service Service, limitType string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := LimitKey{
				Type:     limitType,
				RemoteIP: clientIP(r),
				Endpoint: r.URL.Path,
			}

			err := service.Allow(r.Context(), key)
			switch {
			case err == nil:
			case errors.Is(err, ErrLimitExceeded):
				limit := service.GetLimit(limitType)
				logger.Warn().
					Str("requestId", middleware.GetReqID(r.Context())).
					Str("path", r.URL.Path).
					Str("remoteIP", key.RemoteIP).
					Msg("rate limit exceeded")

				retryAfter := int(limit.Period.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("RateLimit-Limit", strconv.Itoa(limit.Max()))
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limit_exceeded","message":"too many requests"}`))
				return
			default:
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("rate limiter unavailable, allowing request")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. middleware.RealIP is expected
// to have run first when the relay sits behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
