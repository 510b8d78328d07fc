package provider

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"golang.org/x/oauth2"
)

// Exchanger trades an authorization code for tokens at the provider's token
// endpoint. Each call is a single POST: no retry and no timeout beyond the
// HTTP client's own.
type Exchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// ExchangerConfig configures an Exchanger.
type ExchangerConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Endpoints    Endpoints
	Scopes       []string

	// HTTPClient is optional; nil uses http.DefaultClient.
	HTTPClient *http.Client
}

// NewExchanger creates an Exchanger. Client credentials are sent in the
// request body alongside grant_type, code and redirect_uri.
func NewExchanger(cfg ExchangerConfig) *Exchanger {
	return &Exchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.Endpoints.AuthorizeURL,
				TokenURL:  cfg.Endpoints.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: cfg.HTTPClient,
	}
}

// Exchange posts grant_type=authorization_code for code. Failures wrap
// errors.ErrTokenExchange.
func (e *Exchanger) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}
	token, err := e.config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.WithKind(errors.ErrTokenExchange, err)
	}
	return token, nil
}

// TokenURL reports the endpoint the exchanger posts to.
func (e *Exchanger) TokenURL() string {
	return e.config.Endpoint.TokenURL
}
