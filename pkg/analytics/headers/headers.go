// Package headers derives analytics signals from HTTP request headers.
package headers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
)

// Header names consulted for each signal, primary name first
var (
	ViewportWidthHeaders  = []string{"Sec-CH-Viewport-Width", "Viewport-Width"}
	ViewportHeightHeaders = []string{"Sec-CH-Viewport-Height", "Viewport-Height"}
	LanguageHeaders       = []string{"Sec-CH-Lang", "Lang"}
	TimezoneHeaders       = []string{"X-Vercel-IP-Timezone", "CloudFront-Viewer-Time-Zone"}
)

// first returns the value of the first header in names that is set
func first(h http.Header, names []string) (string, bool) {
	for _, name := range names {
		if v := h.Get(name); v != "" {
			return v, true
		}
	}
	return "", false
}

// leadingInt parses the optionally signed base-10 prefix of s, so "1280.5"
// and "800px" yield 1280 and 800.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 0)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func parseDimension(h http.Header, names []string) *int {
	raw, ok := first(h, names)
	if !ok {
		return nil
	}
	v, ok := leadingInt(raw)
	if !ok {
		return nil
	}
	return &v
}

func parseString(h http.Header, names []string) *string {
	v, ok := first(h, names)
	if !ok {
		return nil
	}
	return &v
}

// ViewportWidth returns the client viewport width, or nil if absent or not a number
func ViewportWidth(h http.Header) *int {
	return parseDimension(h, ViewportWidthHeaders)
}

// ViewportHeight returns the client viewport height, or nil if absent or not a number
func ViewportHeight(h http.Header) *int {
	return parseDimension(h, ViewportHeightHeaders)
}

// Language returns the raw client language hint
func Language(h http.Header) *string {
	return parseString(h, LanguageHeaders)
}

// Timezone returns the timezone reported by the edge proxy
func Timezone(h http.Header) *string {
	return parseString(h, TimezoneHeaders)
}

// UserAgent returns the User-Agent header, or an empty string when absent
func UserAgent(h http.Header) string {
	return h.Get("User-Agent")
}

// Extract computes all signals not suppressed by ignore.
func Extract(h http.Header, ignore v1alpha1.IgnoreMetrics) v1alpha1.Signals {
	var s v1alpha1.Signals
	if h == nil {
		h = http.Header{}
	}

	if !ignore.UserAgent {
		ua := UserAgent(h)
		s.UserAgent = &ua
	}
	if !ignore.ViewportSize {
		s.ViewportWidth = ViewportWidth(h)
		s.ViewportHeight = ViewportHeight(h)
	}
	if !ignore.Language {
		s.Language = Language(h)
	}
	if !ignore.Timezone {
		s.Timezone = Timezone(h)
	}

	return s
}
