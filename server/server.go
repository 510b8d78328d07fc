package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-coinbase-oauth/internal/config"
	"github.com/jrsteele09/go-coinbase-oauth/profile"
	"github.com/jrsteele09/go-coinbase-oauth/provider"
	"github.com/jrsteele09/go-coinbase-oauth/sessions"
	"github.com/jrsteele09/go-coinbase-oauth/state"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// TokenExchanger trades an authorization code for tokens.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// Dependencies are the collaborators a Server is built from.
type Dependencies struct {
	Endpoints provider.Endpoints
	Sessions  sessions.Store
	Exchanger TokenExchanger
	Profiles  profile.Fetcher
	// State is optional; nil builds a Signer from the config.
	State *state.Signer
}

type Server struct {
	env       string // Environment (e.g. "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	endpoints provider.Endpoints
	sessions  *sessions.Manager
	exchanger TokenExchanger
	profiles  profile.Fetcher
	state     *state.Signer
}

func New(cfg config.Config, deps Dependencies) (*Server, error) {
	if deps.Exchanger == nil || deps.Profiles == nil {
		return nil, fmt.Errorf("[Server New] exchanger and profile fetcher are required")
	}

	manager, err := sessions.NewManager(sessions.ManagerConfig{
		Store:  deps.Sessions,
		Secret: cfg.GetSessionSecret(),
		MaxAge: cfg.GetMaxSessionAge(),
	})
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session manager: %w", err)
	}

	signer := deps.State
	if signer == nil {
		signer = state.NewSigner(cfg.GetStateSecret(), cfg.GetStateMaxAge())
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		endpoints: deps.Endpoints,
		sessions:  manager,
		exchanger: deps.Exchanger,
		profiles:  deps.Profiles,
		state:     signer,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// RedirectURI is the callback address registered with the provider.
func (s *Server) RedirectURI() string {
	return RedirectURI(s.config)
}

// RedirectURI builds the callback address from the configured base URL.
func RedirectURI(cfg config.Config) string {
	return cfg.GetBaseURL() + RouteCallback
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		log.Info().Str("method", colourMethod(method)).Str("path", path).Msg("Route registered")
	}
}
