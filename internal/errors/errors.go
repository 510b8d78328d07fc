package errors

import (
	"errors"
	"fmt"
)

// Common error types for the OAuth demo
var (
	// State token errors
	ErrMalformedState    = errors.New("malformed state")
	ErrSignatureMismatch = errors.New("state signature mismatch")
	ErrStateExpired      = errors.New("oauth state expired")

	// Upstream errors
	ErrTokenExchange = errors.New("token exchange failed")
	ErrProfileFetch  = errors.New("profile fetch failed")
	ErrDiscovery     = errors.New("provider discovery failed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// WithKind wraps err under the sentinel kind so callers can match either with Is.
func WithKind(kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
