// Package sessions keeps per-visitor server-side state keyed by a signed
// session cookie.
package sessions

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
	"github.com/rs/zerolog/log"
)

// DefaultCookieName is the session cookie name.
const DefaultCookieName = "oauthdemo_sid"

// Manager binds a Store to the session cookie.
type Manager struct {
	store      Store
	codec      *CookieCodec
	maxAge     time.Duration
	cookieName string
	now        func() time.Time
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Store      Store
	Secret     []byte
	MaxAge     time.Duration
	CookieName string
}

// NewManager creates a Manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "session store is required")
	}
	codec, err := NewCookieCodec(cfg.Secret)
	if err != nil {
		return nil, err
	}
	name := cfg.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	return &Manager{
		store:      cfg.Store,
		codec:      codec,
		maxAge:     cfg.MaxAge,
		cookieName: name,
		now:        time.Now,
	}, nil
}

// Load returns the session for r. A missing, forged or expired cookie yields a
// fresh, unsaved session; only store failures are returned as errors.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return m.newSession(w, r), nil
	}

	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring invalid session cookie")
		return m.newSession(w, r), nil
	}

	data, err := m.store.Get(r.Context(), id)
	if errors.Is(err, errors.ErrSessionNotFound) {
		return m.newSession(w, r), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load session")
	}

	return &Session{id: id, data: data, manager: m, w: w, r: r}, nil
}

func (m *Manager) newSession(w http.ResponseWriter, r *http.Request) *Session {
	return &Session{
		id:      uuid.NewString(),
		data:    &Data{CreatedAt: m.now()},
		isNew:   true,
		manager: m,
		w:       w,
		r:       r,
	}
}

func (m *Manager) setCookie(w http.ResponseWriter, r *http.Request, sessionID string) error {
	issued := m.now()
	var expires time.Time
	if m.maxAge > 0 {
		expires = issued.Add(m.maxAge)
	}
	value, err := m.codec.Encode(sessionID, issued, expires)
	if err != nil {
		return errors.Wrapf(err, "encode session cookie")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.maxAge.Seconds()),
	})
	return nil
}

func (m *Manager) clearCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

// Session is the request-scoped view of one visitor's session.
type Session struct {
	id      string
	data    *Data
	isNew   bool
	manager *Manager
	w       http.ResponseWriter
	r       *http.Request
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// IsNew reports whether the session has not been persisted yet.
func (s *Session) IsNew() bool {
	return s.isNew
}

// Credential returns the stored credential, if any.
func (s *Session) Credential() (*Credential, bool) {
	if s.data == nil || s.data.Credential == nil {
		return nil, false
	}
	return s.data.Credential, true
}

// SetCredential stores cred and persists the session.
func (s *Session) SetCredential(ctx context.Context, cred Credential) error {
	s.data.Credential = &cred
	return s.save(ctx)
}

func (s *Session) save(ctx context.Context) error {
	if err := s.manager.store.Save(ctx, s.id, s.data, s.manager.maxAge); err != nil {
		return errors.Wrapf(err, "save session")
	}
	if err := s.manager.setCookie(s.w, s.r, s.id); err != nil {
		return err
	}
	s.isNew = false
	return nil
}

// Destroy deletes the whole session, server record and cookie.
func (s *Session) Destroy(ctx context.Context) error {
	if err := s.manager.store.Delete(ctx, s.id); err != nil {
		return errors.Wrapf(err, "delete session")
	}
	s.manager.clearCookie(s.w, s.r)
	s.id = uuid.NewString()
	s.data = &Data{CreatedAt: s.manager.now()}
	s.isNew = true
	return nil
}
