package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	"github.com/wrale/wrale-analytics/pkg/analytics/request"
)

const (
	maxEventBody       = 64 << 10
	maxEventNameLength = 200
)

func (h *Handler) decodeTrackEvent(w http.ResponseWriter, r *http.Request) (*v1alpha1.TrackEventRequest, error) {
	var req v1alpha1.TrackEventRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody)).Decode(&req); err != nil {
		return nil, ErrInvalidRequest("invalid request body")
	}

	req.Event = strings.TrimSpace(req.Event)
	if req.Event == "" {
		return nil, ErrInvalidRequest("event name is required")
	}
	if utf8.RuneCountInString(req.Event) > maxEventNameLength {
		return nil, ErrInvalidRequest(fmt.Sprintf("event name exceeds %d characters", maxEventNameLength))
	}
	if err := req.Metadata.Validate(); err != nil {
		return nil, ErrInvalidRequest(err.Error())
	}
	return &req, nil
}

// handleTrackEvent relays a custom event using the caller's own headers as
// the signal source.
func (h *Handler) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeTrackEvent(w, r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	opts := h.opts.Defaults
	if req.Hostname != "" {
		opts.Hostname = req.Hostname
	}
	if req.IgnoreMetrics != nil {
		opts.IgnoreMetrics = *req.IgnoreMetrics
	}
	opts.Metadata = req.Metadata

	src := request.FromHeaders{Headers: r.Header}
	if err := h.tracker.TrackEvent(r.Context(), req.Event, src, opts); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
