package v1alpha1

// AnalyticsEvent is a custom event payload
type AnalyticsEvent struct {
	// Type is always TypeEvent
	Type string `json:"type"`
	// Hostname identifies the tracked site
	Hostname string `json:"hostname"`
	// Event is the caller supplied event name
	Event string `json:"event"`
	// Metadata is attached verbatim when present
	Metadata Metadata `json:"metadata,omitempty"`

	Signals
}

// PayloadType implements Payload
func (e *AnalyticsEvent) PayloadType() string { return TypeEvent }

// AnalyticsPageview is a pageview payload
type AnalyticsPageview struct {
	// Type is always TypePageview
	Type string `json:"type"`
	// Hostname identifies the tracked site
	Hostname string `json:"hostname"`
	// Event is always "pageview"
	Event string `json:"event"`
	// Path is the request path, never a reserved proxy path
	Path string `json:"path"`

	Signals
	UTM
}

// PayloadType implements Payload
func (p *AnalyticsPageview) PayloadType() string { return TypePageview }

// NewEvent returns an event payload with its static fields set
func NewEvent(hostname, name string) *AnalyticsEvent {
	return &AnalyticsEvent{
		Type:     TypeEvent,
		Hostname: hostname,
		Event:    name,
	}
}

// NewPageview returns a pageview payload with its static fields set
func NewPageview(hostname, path string) *AnalyticsPageview {
	return &AnalyticsPageview{
		Type:     TypePageview,
		Hostname: hostname,
		Event:    TypePageview,
		Path:     path,
	}
}

// TrackEventRequest is the body accepted by the relay's event endpoint
type TrackEventRequest struct {
	// Event is the event name (required)
	Event string `json:"event"`
	// Hostname overrides the relay's configured hostname
	Hostname string `json:"hostname,omitempty"`
	// Metadata is forwarded with the event
	Metadata Metadata `json:"metadata,omitempty"`
	// IgnoreMetrics suppresses individual signals for this event
	IgnoreMetrics *IgnoreMetrics `json:"ignoreMetrics,omitempty"`
}

// ErrorResponse is returned by the relay on failed requests
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
