package config

// Coinbase endpoints. Sandbox apps must be registered at sandbox.coinbase.com.
const (
	SandboxAuthorizeURL    = "https://sandbox.coinbase.com/oauth/authorize"
	SandboxTokenURL        = "https://api.sandbox.coinbase.com/oauth/token"
	SandboxAPIBaseURL      = "https://api.sandbox.coinbase.com/v2/"
	ProductionAuthorizeURL = "https://www.coinbase.com/oauth/authorize"
	ProductionTokenURL     = "https://api.coinbase.com/oauth/token"
	ProductionAPIBaseURL   = "https://api.coinbase.com/v2/"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	IsSandbox() bool
	GetScopes() []string
	GetAuthorizeURL() string
	GetTokenURL() string
	GetAPIBaseURL() string
	GetIssuerURL() string
}

type OAuth struct {
	ClientID     string   `env:"CLIENT_ID,required"`
	ClientSecret string   `env:"CLIENT_SECRET,required"`
	Sandbox      bool     `env:"SANDBOX" envDefault:"true"`
	Scopes       []string `env:"OAUTH_SCOPES" envSeparator:"," envDefault:"wallet:user:email,wallet:user:read"`

	// Optional overrides of the sandbox/production endpoints.
	AuthorizeURL string `env:"OAUTH_AUTHORIZE_URL"`
	TokenURL     string `env:"OAUTH_TOKEN_URL"`
	APIBaseURL   string `env:"API_BASE_URL"`

	// IssuerURL switches endpoint resolution to OIDC discovery.
	IssuerURL string `env:"OIDC_ISSUER_URL"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

func (o OAuth) IsSandbox() bool {
	return o.Sandbox
}

func (o OAuth) GetScopes() []string {
	return append([]string(nil), o.Scopes...)
}

func (o OAuth) GetAuthorizeURL() string {
	return pick(o.AuthorizeURL, o.Sandbox, SandboxAuthorizeURL, ProductionAuthorizeURL)
}

func (o OAuth) GetTokenURL() string {
	return pick(o.TokenURL, o.Sandbox, SandboxTokenURL, ProductionTokenURL)
}

func (o OAuth) GetAPIBaseURL() string {
	return pick(o.APIBaseURL, o.Sandbox, SandboxAPIBaseURL, ProductionAPIBaseURL)
}

func (o OAuth) GetIssuerURL() string {
	return o.IssuerURL
}

func pick(override string, sandbox bool, sandboxValue, productionValue string) string {
	if override != "" {
		return override
	}
	if sandbox {
		return sandboxValue
	}
	return productionValue
}
