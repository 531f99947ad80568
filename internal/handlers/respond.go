// Package handlers contains the HTTP handlers for the note, upload,
// search, usage, and health endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"brainer/internal/contextutil"
	"brainer/internal/enrich"
	"brainer/internal/notes"
	"brainer/internal/usage"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeServiceError maps a service-layer error to an HTTP response.
// Validation problems and known sentinels get their own statuses; the
// rest is classified by the enrichment failure kind.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *enrich.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var limitErr *usage.ErrLimitExceeded
	if errors.As(err, &limitErr) {
		writeError(w, http.StatusTooManyRequests, limitErr.Error())
		return
	}

	if errors.Is(err, notes.ErrNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if errors.Is(err, notes.ErrTranscriptionUnavailable) {
		writeError(w, http.StatusBadRequest, "note has no transcription job")
		return
	}

	logger.ErrorContext(ctx, "request failed", "error", err)
	switch enrich.Classify(err) {
	case enrich.KindNotConfigured:
		writeError(w, http.StatusServiceUnavailable, "AI service is not configured")
	case enrich.KindRateLimited:
		writeError(w, http.StatusTooManyRequests, "AI service rate limit reached, try again later")
	case enrich.KindVectorUnavailable:
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
