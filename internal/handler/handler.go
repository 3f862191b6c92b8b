package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ota-rewards/internal/cart"
	"ota-rewards/internal/model"

	"github.com/rs/zerolog"
)

// SessionHeader identifies the caller's cart.
const SessionHeader = "X-Session-ID"

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code. The status is
// sent before encoding, so an encode failure leaves a truncated body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeOK wraps data in a successful envelope.
func writeOK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, model.OK(data))
}

// WriteError maps err to a status code and writes a failed envelope. Domain
// errors keep their message; anything else is reported as an internal error.
func WriteError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	status, code, message := classify(err)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Int("status", status).Str("code", code).Msg("request failed")

	writeJSON(w, status, model.Fail(code, message))
}

func classify(err error) (status int, code, message string) {
	if de, ok := model.AsDomainError(err); ok {
		switch de.Kind {
		case model.KindNotFound:
			return http.StatusNotFound, de.Code, de.Message
		default:
			return http.StatusBadRequest, de.Code, de.Message
		}
	}
	return http.StatusInternalServerError, model.ErrCodeInternalError, "internal error"
}

// decodeJSON reads a JSON body into dst. Malformed bodies map to
// model.ErrInvalidJSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return model.ErrInvalidJSON
		}
		return errors.Join(model.ErrInvalidJSON, err)
	}
	return nil
}

// sessionID returns the caller's session, or the default session.
func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return cart.DefaultSession
}

// NotFound replies with the unknown-endpoint envelope.
func NotFound(logger zerolog.Logger) http.HandlerFunc {
	logger = logger.With().Str("handler", "not_found").Logger()
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("endpoint not found")
		writeJSON(w, http.StatusNotFound, model.Fail(model.ErrCodeEndpointNotFound, model.ErrEndpointNotFound.Message))
	}
}

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
