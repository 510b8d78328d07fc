package server

import (
	"net/http"

	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// appHandler is a route that reports failures instead of writing them.
type appHandler func(w http.ResponseWriter, r *http.Request) error

// handle adapts an appHandler, sending any returned error to handleError.
func (s *Server) handle(h appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			handleError(w, r, err)
		}
	}
}

// handleError is the generic failure pathway. Upstream failures map to 502,
// anything else to 500; details are logged, never shown.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, errors.ErrTokenExchange):
		status = http.StatusBadGateway
		message = "could not complete login with the provider"
	case errors.Is(err, errors.ErrProfileFetch):
		status = http.StatusBadGateway
		message = "could not load your profile from the provider"
	}

	log.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("Request failed")
	http.Error(w, message, status)
}

// writeText sends a plain-text body with no trailing newline.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// writeHTML sends an HTML fragment.
func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
