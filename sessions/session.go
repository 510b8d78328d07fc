package sessions

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Credential is the delegated access obtained by the callback handler.
type Credential struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	BaseAPIURI   string    `json:"baseApiUri"`
	TokenURI     string    `json:"tokenUri"`
	Expiry       time.Time `json:"expiry"`
}

// OAuth2Token converts the credential for use with a static token source.
func (c *Credential) OAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       c.Expiry,
	}
}

// Data is everything kept server side for one session.
type Data struct {
	Credential *Credential `json:"credential,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Store persists session data by session ID.
type Store interface {
	// Get returns errors.ErrSessionNotFound for unknown or expired IDs.
	Get(ctx context.Context, sessionID string) (*Data, error)
	Save(ctx context.Context, sessionID string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
