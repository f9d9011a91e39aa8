package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/store"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, status int, message string) {
	writeJSON(w, log, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    status,
		Message: message,
	})
}

// writeStoreError maps a gateway failure onto a status code. The message is
// the store's fixed failure text; the underlying error is only logged.
func writeStoreError(w http.ResponseWriter, log zerolog.Logger, err error, message string) {
	var remote *repositories.RemoteIOError
	switch {
	case errors.Is(err, store.ErrInvalidDocument):
		writeError(w, log, http.StatusBadRequest, message)
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, log, http.StatusNotFound, message)
	case errors.As(err, &remote):
		writeError(w, log, http.StatusBadGateway, message)
	default:
		writeError(w, log, http.StatusInternalServerError, message)
	}
}
