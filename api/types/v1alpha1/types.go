// Package v1alpha1 contains the wire types for server-side analytics payloads.
package v1alpha1

import "fmt"

// Payload type discriminators as sent in the "type" field
const (
	// TypeEvent marks a custom event payload
	TypeEvent = "event"
	// TypePageview marks a pageview payload
	TypePageview = "pageview"
)

// Payload is implemented by every body the collection endpoint accepts
type Payload interface {
	// PayloadType returns the value of the "type" field
	PayloadType() string
}

// IgnoreMetrics suppresses collection of individual signals. A true flag
// means the matching fields are never computed and are absent from the payload.
type IgnoreMetrics struct {
	// UserAgent suppresses the ua field
	UserAgent bool `json:"userAgent,omitempty" yaml:"userAgent" mapstructure:"user-agent"`
	// ViewportSize suppresses viewport_width and viewport_height
	ViewportSize bool `json:"viewportSize,omitempty" yaml:"viewportSize" mapstructure:"viewport-size"`
	// Language suppresses the language field
	Language bool `json:"language,omitempty" yaml:"language" mapstructure:"language"`
	// Timezone suppresses the timezone field
	Timezone bool `json:"timezone,omitempty" yaml:"timezone" mapstructure:"timezone"`
	// UTM suppresses all utm_* fields
	UTM bool `json:"utm,omitempty" yaml:"utm" mapstructure:"utm"`
}

// Signals holds the values derived from request headers. Nil fields are
// omitted from the serialized payload.
type Signals struct {
	UserAgent      *string `json:"ua,omitempty"`
	ViewportWidth  *int    `json:"viewport_width,omitempty"`
	ViewportHeight *int    `json:"viewport_height,omitempty"`
	Language       *string `json:"language,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`
}

// UTM holds campaign attribution parameters
type UTM struct {
	Source   string `json:"utm_source,omitempty"`
	Medium   string `json:"utm_medium,omitempty"`
	Campaign string `json:"utm_campaign,omitempty"`
	Term     string `json:"utm_term,omitempty"`
	Content  string `json:"utm_content,omitempty"`
}

// IsZero reports whether no parameter is set
func (u UTM) IsZero() bool {
	return u == UTM{}
}

// Metadata carries caller-defined scalar values attached to a custom event
type Metadata map[string]any

// Validate returns an error naming the first key whose value is not a scalar
func (m Metadata) Validate() error {
	for k, v := range m {
		switch v.(type) {
		case nil, string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
		default:
			return fmt.Errorf("metadata key %q: value of type %T is not a scalar", k, v)
		}
	}
	return nil
}
