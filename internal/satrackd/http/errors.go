package http

import (
	"net/http"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	apperrors "github.com/wrale/wrale-analytics/internal/errors"
)

type HTTPError interface {
	error
	StatusCode() int
}

type httpError struct {
	msg  string
	code int
}

func (e *httpError) Error() string {
	return e.msg
}

func (e *httpError) StatusCode() int {
	return e.code
}

func ErrInvalidRequest(msg string) error {
	return &httpError{msg: msg, code: http.StatusBadRequest}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	resp := v1alpha1.ErrorResponse{Error: "internal_error", Message: "internal server error"}

	if he, ok := err.(HTTPError); ok {
		code = he.StatusCode()
		resp = v1alpha1.ErrorResponse{Error: "invalid_request", Message: he.Error()}
	} else {
		switch {
		case apperrors.IsInvalidInput(err):
			code = http.StatusBadRequest
			resp = v1alpha1.ErrorResponse{Error: "invalid_request", Message: err.Error()}
		case apperrors.IsTransport(err):
			code = http.StatusBadGateway
			resp = v1alpha1.ErrorResponse{Error: "upstream_unavailable", Message: "collection endpoint unreachable"}
		}
	}

	if code >= 500 {
		h.logger.Error().Err(err).Int("status", code).Msg("request failed")
	}
	h.respondJSON(w, code, resp)
}
