package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"secondbrain/internal/apperrors"
)

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func SendJSONError(w http.ResponseWriter, message string, status int) {
	RespondWithJSON(w, status, ErrorResponse{Error: message})
}

// SendServiceError maps the service error taxonomy onto HTTP statuses:
// validation and conflict 400, not found 404, anything else 500.
func SendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrNotFound):
		SendJSONError(w, err.Error(), http.StatusNotFound)
	default:
		SendJSONError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
