package provider

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"github.com/jrsteele09/go-coinbase-oauth/profile"
	"github.com/jrsteele09/go-coinbase-oauth/sessions"
	"golang.org/x/oauth2"
)

// OIDCProvider is a provider whose endpoints were resolved from its
// /.well-known/openid-configuration document.
type OIDCProvider struct {
	provider   *oidc.Provider
	endpoints  Endpoints
	httpClient *http.Client
}

// Discover fetches the issuer's discovery document. The issuer in the
// document must match issuerURL.
func Discover(ctx context.Context, issuerURL string, httpClient *http.Client) (*OIDCProvider, error) {
	if httpClient != nil {
		ctx = oidc.ClientContext(ctx, httpClient)
	}
	p, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, errors.WithKind(errors.ErrDiscovery, err)
	}
	if p.UserInfoEndpoint() == "" {
		return nil, errors.Wrapf(errors.ErrDiscovery, "issuer %s does not advertise a userinfo endpoint", issuerURL)
	}

	ep := p.Endpoint()
	return &OIDCProvider{
		provider: p,
		endpoints: Endpoints{
			AuthorizeURL: ep.AuthURL,
			TokenURL:     ep.TokenURL,
			APIBaseURL:   p.UserInfoEndpoint(),
		},
		httpClient: httpClient,
	}, nil
}

// Endpoints returns the discovered endpoints.
func (p *OIDCProvider) Endpoints() Endpoints {
	return p.endpoints
}

// CurrentUser reads the userinfo endpoint with the stored access token.
func (p *OIDCProvider) CurrentUser(ctx context.Context, cred *sessions.Credential) (*profile.User, error) {
	if p.httpClient != nil {
		ctx = oidc.ClientContext(ctx, p.httpClient)
	}
	src := oauth2.StaticTokenSource(cred.OAuth2Token())
	info, err := p.provider.UserInfo(ctx, src)
	if err != nil {
		return nil, errors.WithKind(errors.ErrProfileFetch, err)
	}

	var claims struct {
		Name string `json:"name"`
	}
	// Name is optional; a claims decode failure leaves it empty.
	_ = info.Claims(&claims)

	return &profile.User{
		ID:    info.Subject,
		Name:  claims.Name,
		Email: info.Email,
	}, nil
}
