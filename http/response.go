package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"quickgfe/domain"
)

const maxBodyBytes = 64 << 10

var errUnsupportedMediaType = errors.New("Content-Type must be application/json")

type errorResponse struct {
	OK      bool                `json:"ok"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return errUnsupportedMediaType
	}
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}

// writeError maps engine errors onto the quote error envelope. A cancelled
// computation writes nothing.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrCancelled):
		logger.DebugContext(r.Context(), "request cancelled", "path", r.URL.Path)
	case errors.As(err, &verr):
		writeJSON(w, logger, http.StatusUnprocessableEntity, errorResponse{
			Message: verr.First().Field + " " + verr.First().Message,
			Errors:  verr.Fields,
		})
	case errors.Is(err, domain.ErrConfigurationGap):
		logger.ErrorContext(r.Context(), "program configuration gap", "error", err)
		writeJSON(w, logger, http.StatusInternalServerError, errorResponse{Message: err.Error()})
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, logger, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

// writeDecodeError reports a body that could not be read.
func writeDecodeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if errors.Is(err, errUnsupportedMediaType) {
		writeJSON(w, logger, http.StatusUnsupportedMediaType, errorResponse{Message: err.Error()})
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, logger, http.StatusRequestEntityTooLarge, errorResponse{Message: "request body too large"})
		return
	}
	writeJSON(w, logger, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
}
