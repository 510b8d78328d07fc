// Package coinbase is a minimal client for the Coinbase v2 REST API,
// authenticated with an OAuth2 bearer token.
package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"github.com/jrsteele09/go-coinbase-oauth/profile"
	"github.com/jrsteele09/go-coinbase-oauth/sessions"
	"golang.org/x/oauth2"
)

// APIVersion is sent as CB-VERSION on every request.
const APIVersion = "2016-08-24"

const maxErrorBody = 4 << 10

// User is the v2 user resource.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	AvatarURL       string `json:"avatar_url"`
	Resource        string `json:"resource"`
	ResourcePath    string `json:"resource_path"`
	TimeZone        string `json:"time_zone"`
	NativeCurrency  string `json:"native_currency"`
	ProfileLocation string `json:"profile_location"`
}

type userEnvelope struct {
	Data User `json:"data"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Errors     []struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("coinbase api: status %d", e.StatusCode)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, item.ID+": "+item.Message)
	}
	return fmt.Sprintf("coinbase api: status %d: %s", e.StatusCode, strings.Join(msgs, "; "))
}

// Client issues API calls on behalf of a session credential. It never
// refreshes tokens.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client. httpClient supplies the base transport; nil
// uses http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// GetCurrentUser fetches GET {BaseAPIURI}user.
func (c *Client) GetCurrentUser(ctx context.Context, cred *sessions.Credential) (*User, error) {
	endpoint, err := url.JoinPath(cred.BaseAPIURI, "user")
	if err != nil {
		return nil, errors.Wrapf(err, "invalid api base %q", cred.BaseAPIURI)
	}

	var env userEnvelope
	if err := c.get(ctx, cred, endpoint, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CurrentUser implements profile.Fetcher.
func (c *Client) CurrentUser(ctx context.Context, cred *sessions.Credential) (*profile.User, error) {
	u, err := c.GetCurrentUser(ctx, cred)
	if err != nil {
		return nil, errors.WithKind(errors.ErrProfileFetch, err)
	}
	return &profile.User{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

func (c *Client) get(ctx context.Context, cred *sessions.Credential, endpoint string, out any) error {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(cred.OAuth2Token()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("CB-VERSION", APIVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(body, apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
