package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/LegacyPlugin/platform-app/internal/upstream"
)

type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func respondRedirect(w http.ResponseWriter, status int, code, message, redirect string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code, Redirect: redirect})
}

// respondUpstreamError maps the upstream error taxonomy onto this API's
// responses: structured messages pass through verbatim, transport failures
// become a generic connection error.
func respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.As(err, &apiErr):
		respondError(w, apiErr.StatusCode, "upstream_error", apiErr.Message)
	case errors.Is(err, upstream.ErrUnreachable):
		respondError(w, http.StatusBadGateway, "connection_error", "could not reach the store service")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
