// Package utm extracts campaign attribution parameters from a query string.
package utm

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
)

// MaxValueLength is the longest value, in runes, accepted in strict mode
const MaxValueLength = 256

// Recognized parameter names
const (
	Source   = "utm_source"
	Medium   = "utm_medium"
	Campaign = "utm_campaign"
	Term     = "utm_term"
	Content  = "utm_content"
)

// Options controls parameter validation
type Options struct {
	// Strict drops values that fail Valid instead of passing them through
	Strict bool
}

// DefaultOptions returns strict parsing
func DefaultOptions() Options {
	return Options{Strict: true}
}

// Parse returns the recognized utm_* parameters found in q. Unknown keys are
// ignored and, in strict mode, malformed values are dropped.
func Parse(q url.Values, opts Options) v1alpha1.UTM {
	var out v1alpha1.UTM
	if q == nil {
		return out
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{Source, &out.Source},
		{Medium, &out.Medium},
		{Campaign, &out.Campaign},
		{Term, &out.Term},
		{Content, &out.Content},
	}

	for _, f := range fields {
		if !q.Has(f.name) {
			continue
		}
		v := q.Get(f.name)
		if opts.Strict {
			v = strings.TrimSpace(v)
			if !Valid(v) {
				continue
			}
		}
		*f.dst = v
	}

	return out
}

// Valid reports whether v is a non-empty, length-bounded, printable value
func Valid(v string) bool {
	if v == "" || !utf8.ValidString(v) {
		return false
	}
	if utf8.RuneCountInString(v) > MaxValueLength {
		return false
	}
	for _, r := range v {
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
