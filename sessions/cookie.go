package sessions

import (
	"crypto/sha256"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const cookieKeyInfo = "session-cookie-v1"

// CookieCodec signs session IDs into cookie values as HS256 JWTs.
// The signing key is derived from the configured session secret with HKDF.
type CookieCodec struct {
	key []byte
}

// NewCookieCodec derives a signing key from secret.
func NewCookieCodec(secret []byte) (*CookieCodec, error) {
	if len(secret) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "session secret is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(cookieKeyInfo)), key); err != nil {
		return nil, errors.Wrapf(err, "derive cookie key")
	}
	return &CookieCodec{key: key}, nil
}

// Encode returns a cookie value for sessionID. A zero expiresAt omits exp.
func (c *CookieCodec) Encode(sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       sessionID,
		IssuedAt: jwt.NewNumericDate(issuedAt),
	}
	if !expiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Decode verifies value and returns the session ID it carries.
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.WithKind(errors.ErrInvalidSession, err)
	}
	if claims.ID == "" {
		return "", errors.Wrapf(errors.ErrInvalidSession, "cookie has no session id")
	}
	return claims.ID, nil
}
