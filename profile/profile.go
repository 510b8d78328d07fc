// Package profile describes the signed-in user as reported by the provider.
package profile

import (
	"context"

	"github.com/jrsteele09/go-coinbase-oauth/sessions"
)

// User is the subset of the provider's "current user" resource the app shows.
type User struct {
	ID    string
	Name  string
	Email string
}

// Fetcher calls the provider's "current user" API with a stored credential.
type Fetcher interface {
	CurrentUser(ctx context.Context, cred *sessions.Credential) (*User, error)
}
