package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/romanwintercz/kniha-jizd-api/internal/assist"
	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
)

// errorResponse is the uniform error body: {"error":{"code","message"}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service error onto the uniform error body. Sentinel
// errors carry their own status; anything unrecognized is a 500 with the
// detail kept out of the response.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrTripLocked):
		writeErrorBody(w, http.StatusConflict, "trip_locked", unwrapMessage(err))
	case errors.Is(err, domain.ErrMalformedBundle):
		writeErrorBody(w, http.StatusUnprocessableEntity, "malformed_bundle", unwrapMessage(err))
	case errors.Is(err, assist.ErrNotConfigured):
		writeErrorBody(w, http.StatusServiceUnavailable, "assist_unavailable", "AI assistance is not configured")
	default:
		slog.Error("internal error", "error", err)
		writeErrorBody(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// writeAssistError maps assist failures. Validation and configuration
// errors keep their usual mapping; anything else is an upstream model
// failure and answers 502 so the client can distinguish "my input was
// bad" from "the AI is down".
func writeAssistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, assist.ErrNotConfigured):
		writeError(w, err)
	default:
		slog.Error("assist upstream error", "error", err)
		writeErrorBody(w, http.StatusBadGateway, "assist_failed", "AI suggestion failed")
	}
}

// writeBadRequest rejects a request before it reaches the service layer,
// e.g. a missing or malformed body.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeErrorBody(w, http.StatusBadRequest, "bad_request", message)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// client typos surface as 400s instead of silently dropped data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: origin is
// required" becomes "origin is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrTripLocked.Error(),
		domain.ErrMalformedBundle.Error(),
	} {
		if i := strings.LastIndex(msg, sentinel+": "); i >= 0 {
			return msg[i+len(sentinel)+2:]
		}
		if strings.HasSuffix(msg, sentinel) {
			return sentinel
		}
	}
	return msg
}
