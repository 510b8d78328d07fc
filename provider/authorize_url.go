package provider

import (
	"net/url"
	"strings"
)

// ScopeSeparator joins requested scopes in the authorization URL.
const ScopeSeparator = ","

// Endpoints are the provider URLs used by one deployment.
type Endpoints struct {
	AuthorizeURL string
	TokenURL     string
	// APIBaseURL is the root of the "current user" API, or the userinfo
	// endpoint when the provider was discovered over OIDC.
	APIBaseURL string
}

// BuildAuthURL composes the redirect sent to the provider's authorization
// endpoint. Each value is percent-encoded on its own; scopes are joined with
// commas before encoding.
func BuildAuthURL(baseAuthEndpoint, clientID, redirectURI string, scopes []string, state string) string {
	var b strings.Builder
	b.WriteString(baseAuthEndpoint)
	if strings.Contains(baseAuthEndpoint, "?") {
		b.WriteString("&")
	} else {
		b.WriteString("?")
	}
	b.WriteString("response_type=code")
	b.WriteString("&client_id=" + EncodeComponent(clientID))
	b.WriteString("&redirect_uri=" + EncodeComponent(redirectURI))
	b.WriteString("&state=" + EncodeComponent(state))
	b.WriteString("&scope=" + EncodeComponent(strings.Join(scopes, ScopeSeparator)))
	return b.String()
}

// EncodeComponent percent-encodes s for use as a single query value.
// Spaces become %20 rather than '+'.
func EncodeComponent(s string) string {
	// QueryEscape already turns a literal '+' into %2B, so every remaining '+'
	// stands for a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
