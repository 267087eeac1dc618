// Package privacy evaluates browser opt-out signals.
package privacy

import (
	"net/http"
	"strings"
)

// SignalHeaders lists the headers that carry an opt-out preference
var SignalHeaders = []string{"DNT", "Sec-GPC"}

// DoNotTrackEnabled reports whether the client asked not to be tracked
// through Do-Not-Track or Global Privacy Control.
func DoNotTrackEnabled(h http.Header) bool {
	for _, name := range SignalHeaders {
		if enabled(h.Get(name)) {
			return true
		}
	}
	return false
}

func enabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "yes", "true":
		return true
	}
	return false
}
