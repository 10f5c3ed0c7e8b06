package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"desserts-ops/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeDomainError maps service-layer errors onto HTTP statuses: missing rows
// to 404, rejected input to 422 with the offending field, refused operations
// and illegal status transitions to 409. Everything else is a 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *core.ValidationError
		ce *core.ConflictError
		te *core.TransitionError
	)
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.As(err, &ve):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(errorResponse{
			Error:     ve.Error(),
			Code:      "VALIDATION_FAILED",
			Field:     ve.Field,
			RequestID: requestIDFromContext(r.Context()),
		})
	case errors.As(err, &ce):
		writeError(w, r, ce.Error(), "CONFLICT", http.StatusConflict)
	case errors.As(err, &te):
		writeError(w, r, te.Error(), "INVALID_TRANSITION", http.StatusConflict)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeCreated writes a JSON response with status 201.
func writeCreated(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}
