// Package request normalizes the two call shapes accepted by the tracker
// into a single (path, query, headers) view.
package request

import (
	"net/http"
	"net/url"
)

// Kind discriminates Source variants
type Kind int

const (
	// KindRequest is a full incoming request
	KindRequest Kind = iota + 1
	// KindHeaders is a header-only context without a query string
	KindHeaders
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindHeaders:
		return "headers"
	default:
		return "unknown"
	}
}

// Source is either FromRequest or FromHeaders. The interface is sealed.
type Source interface {
	Kind() Kind
	sealed()
}

// FromRequest wraps an incoming request
type FromRequest struct {
	Request *http.Request
}

// Kind implements Source
func (FromRequest) Kind() Kind { return KindRequest }
func (FromRequest) sealed()    {}

// FromHeaders carries a header set and an optional path when no request is available
type FromHeaders struct {
	Path    string
	Headers http.Header
}

// Kind implements Source
func (FromHeaders) Kind() Kind { return KindHeaders }
func (FromHeaders) sealed()    {}

// Normalized is the uniform view of a Source
type Normalized struct {
	// Path is the request path
	Path string
	// Query is nil when the source carried no query string
	Query url.Values
	// Headers is never nil
	Headers http.Header
}

// HasQuery reports whether UTM extraction is possible
func (n Normalized) HasQuery() bool {
	return n.Query != nil
}

// Normalize converts src into a Normalized value
func Normalize(src Source) Normalized {
	var n Normalized

	switch s := src.(type) {
	case FromRequest:
		if s.Request == nil {
			break
		}
		if s.Request.URL != nil {
			n.Path = s.Request.URL.Path
			n.Query = s.Request.URL.Query()
		}
		n.Headers = s.Request.Header
	case FromHeaders:
		n.Path = s.Path
		n.Headers = s.Headers
	}

	if n.Path == "" {
		n.Path = "/"
	}
	if n.Headers == nil {
		n.Headers = http.Header{}
	}
	return n
}
