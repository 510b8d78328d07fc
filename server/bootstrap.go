package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-coinbase-oauth/coinbase"
	"github.com/jrsteele09/go-coinbase-oauth/internal/config"
	"github.com/jrsteele09/go-coinbase-oauth/profile"
	"github.com/jrsteele09/go-coinbase-oauth/provider"
	"github.com/jrsteele09/go-coinbase-oauth/sessions"
	"github.com/rs/zerolog/log"
)

// Build wires the production collaborators described by cfg. The returned
// close function releases the session store connection, if any.
func Build(ctx context.Context, cfg config.Config) (*Server, func() error, error) {
	store, closeStore, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	deps, err := buildProvider(ctx, cfg, http.DefaultClient)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	deps.Sessions = store

	s, err := New(cfg, deps)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return s, closeStore, nil
}

func buildSessionStore(ctx context.Context, cfg config.Config) (sessions.Store, func() error, error) {
	switch cfg.GetSessionStore() {
	case config.SessionStoreRedis:
		client, err := sessions.DialRedis(ctx, cfg.GetRedisURL())
		if err != nil {
			return nil, nil, fmt.Errorf("[Server Build] %w", err)
		}
		log.Info().Msg("Using redis session store")
		return sessions.NewRedisStore(client, ""), client.Close, nil
	default:
		log.Info().Msg("Using in-memory session store")
		return sessions.NewMemoryStore(), func() error { return nil }, nil
	}
}

// buildProvider resolves endpoints either statically (sandbox/production,
// with overrides) or through OIDC discovery, and picks the matching profile
// fetcher.
func buildProvider(ctx context.Context, cfg config.Config, httpClient *http.Client) (Dependencies, error) {
	var (
		endpoints provider.Endpoints
		profiles  profile.Fetcher
	)

	if issuer := cfg.GetIssuerURL(); issuer != "" {
		p, err := provider.Discover(ctx, issuer, httpClient)
		if err != nil {
			return Dependencies{}, fmt.Errorf("[Server Build] %w", err)
		}
		endpoints = p.Endpoints()
		profiles = p
		log.Info().Str("issuer", issuer).Msg("Resolved provider endpoints via OIDC discovery")
	} else {
		endpoints = provider.Endpoints{
			AuthorizeURL: cfg.GetAuthorizeURL(),
			TokenURL:     cfg.GetTokenURL(),
			APIBaseURL:   cfg.GetAPIBaseURL(),
		}
		profiles = coinbase.NewClient(httpClient)
		log.Info().Bool("sandbox", cfg.IsSandbox()).Msg("Using static provider endpoints")
	}

	exchanger := provider.NewExchanger(provider.ExchangerConfig{
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		RedirectURL:  RedirectURI(cfg),
		Endpoints:    endpoints,
		Scopes:       cfg.GetScopes(),
		HTTPClient:   httpClient,
	})

	return Dependencies{
		Endpoints: endpoints,
		Exchanger: exchanger,
		Profiles:  profiles,
	}, nil
}
