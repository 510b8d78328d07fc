package server

import (
	"html"
	"net/http"
)

const (
	msgNotLoggedIn = `not logged in, go to <a href="` + RouteLogin + `">login</a>`
	msgLoggedOut   = `you have been logged out <a href="` + RouteHome + `">home</a>`
)

// HomeHandler shows the signed-in user's email (GET /).
func (s *Server) HomeHandler() appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		session, err := s.sessions.Load(w, r)
		if err != nil {
			return err
		}
		cred, ok := session.Credential()
		if !ok {
			writeHTML(w, http.StatusOK, msgNotLoggedIn)
			return nil
		}

		user, err := s.profiles.CurrentUser(r.Context(), cred)
		if err != nil {
			return err
		}
		writeHTML(w, http.StatusOK, `email: `+html.EscapeString(user.Email)+` <a href="`+RouteLogout+`">logout</a>`)
		return nil
	}
}

// LogoutHandler destroys the whole session (GET /logout).
func (s *Server) LogoutHandler() appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		session, err := s.sessions.Load(w, r)
		if err != nil {
			return err
		}
		if _, ok := session.Credential(); !ok {
			writeHTML(w, http.StatusOK, msgNotLoggedIn)
			return nil
		}
		if err := session.Destroy(r.Context()); err != nil {
			return err
		}
		writeHTML(w, http.StatusOK, msgLoggedOut)
		return nil
	}
}
