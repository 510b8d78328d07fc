package server

import (
	"html"
	"net/http"

	"github.com/jrsteele09/go-coinbase-oauth/provider"
)

// LoginHandler renders a single link to the provider's authorization page
// (GET /login). Each render carries a freshly signed state token.
func (s *Server) LoginHandler() appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		authURL := provider.BuildAuthURL(
			s.endpoints.AuthorizeURL,
			s.config.GetClientID(),
			s.RedirectURI(),
			s.config.GetScopes(),
			s.state.New(),
		)
		writeHTML(w, http.StatusOK, `<a href="`+html.EscapeString(authURL)+`">Login with Coinbase</a>`)
		return nil
	}
}
