package server

import (
	"net/http"

	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"github.com/jrsteele09/go-coinbase-oauth/sessions"
	"github.com/rs/zerolog/log"
)

const (
	msgInvalidState = "invalid state"
	msgStateExpired = "oauth state expired"
	msgAccessDenied = "authorization was not granted"
)

// OAuthCallbackHandler completes the authorization-code flow
// (GET /oauth_callback). The sequence is linear: validate state, exchange the
// code once, store the credential, redirect home. A state failure ends the
// request with a plain message and no exchange.
func (s *Server) OAuthCallbackHandler() appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		query := r.URL.Query()

		if providerErr := query.Get("error"); providerErr != "" {
			log.Info().Str("error", providerErr).Msg("Provider returned an authorization error")
			writeText(w, http.StatusBadRequest, msgAccessDenied)
			return nil
		}

		if err := s.state.Check(query.Get("state")); err != nil {
			log.Debug().Err(err).Msg("Rejected oauth state")
			if errors.Is(err, errors.ErrStateExpired) {
				writeText(w, http.StatusBadRequest, msgStateExpired)
			} else {
				writeText(w, http.StatusBadRequest, msgInvalidState)
			}
			return nil
		}

		token, err := s.exchanger.Exchange(r.Context(), query.Get("code"))
		if err != nil {
			return err
		}

		session, err := s.sessions.Load(w, r)
		if err != nil {
			return err
		}
		err = session.SetCredential(r.Context(), sessions.Credential{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			BaseAPIURI:   s.endpoints.APIBaseURL,
			TokenURI:     s.endpoints.TokenURL,
			Expiry:       token.Expiry,
		})
		if err != nil {
			return err
		}

		http.Redirect(w, r, RouteHome, http.StatusFound)
		return nil
	}
}
