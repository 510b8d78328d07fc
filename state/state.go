// Package state mints and checks the anti-forgery token round-tripped through
// the provider's authorization redirect.
//
// A token is "<unix millis>;<base64(HMAC-SHA256(secret, unix millis))>". Nothing
// is stored server side: validity is recomputed from the secret and the
// embedded timestamp.
package state

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
)

const (
	// Delimiter separates the timestamp from its signature.
	Delimiter = ";"

	// DefaultMaxAge is the freshness window for a state token.
	DefaultMaxAge = 60 * time.Second
)

// Generate returns a signed state token for now.
func Generate(secret []byte, now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	return ts + Delimiter + sign(secret, ts)
}

// Validate checks the shape, signature and age of token in that order.
// A token exactly maxAge old is still valid.
func Validate(secret []byte, token string, now time.Time, maxAge time.Duration) error {
	parts := strings.Split(token, Delimiter)
	if len(parts) != 2 {
		return errors.Wrapf(errors.ErrMalformedState, "expected 2 parts, got %d", len(parts))
	}

	// Exact byte equality, evaluated in constant time.
	if !hmac.Equal([]byte(sign(secret, parts[0])), []byte(parts[1])) {
		return errors.ErrSignatureMismatch
	}

	issuedAt, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrMalformedState, "timestamp %q", parts[0])
	}

	if now.UnixMilli()-issuedAt > maxAge.Milliseconds() {
		return errors.ErrStateExpired
	}
	return nil
}

func sign(secret []byte, timestamp string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(timestamp))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Signer binds a secret, freshness window and clock for request handlers.
type Signer struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

// NewSigner creates a Signer. A non-positive maxAge falls back to DefaultMaxAge.
func NewSigner(secret []byte, maxAge time.Duration, opts ...Option) *Signer {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	s := &Signer{secret: secret, maxAge: maxAge, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New mints a token for the current time.
func (s *Signer) New() string {
	return Generate(s.secret, s.now())
}

// Check validates token against the current time.
func (s *Signer) Check(token string) error {
	return Validate(s.secret, token, s.now(), s.maxAge)
}

// MaxAge reports the freshness window.
func (s *Signer) MaxAge() time.Duration {
	return s.maxAge
}
