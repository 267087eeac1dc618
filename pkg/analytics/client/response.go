package client

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// maxErrorBody caps how much of a response is read
const maxErrorBody = 64 << 10

// handleResponse logs a failed delivery. The error body is decoded as JSON
// when possible; otherwise only the status code is reported. The body is
// drained so the connection can be reused.
func handleResponse(resp *http.Response, kind string, logger zerolog.Logger) {
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.Debug().Int("status", resp.StatusCode).Msgf("tracked %s", kind)
		return
	}

	var apiErr any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&apiErr); err != nil {
		logger.Error().
			Int("status", resp.StatusCode).
			Msgf("failed to track %s: %d", kind, resp.StatusCode)
		return
	}

	logger.Error().
		Int("status", resp.StatusCode).
		Interface("response", apiErr).
		Msgf("failed to track %s: %d", kind, resp.StatusCode)
}
