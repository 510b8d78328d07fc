package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
)

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of Store
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry // sessionID -> entry
	now      func() time.Time
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Get retrieves a session, evicting it if its TTL has passed
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Data, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is required")
	}

	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.ErrSessionNotFound
	}

	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, errors.ErrSessionNotFound
	}

	// Copy so callers cannot mutate the stored record
	data := entry.data
	if entry.data.Credential != nil {
		cred := *entry.data.Credential
		data.Credential = &cred
	}
	return &data, nil
}

// Save creates or replaces a session. A non-positive ttl never expires.
func (s *MemoryStore) Save(_ context.Context, sessionID string, data *Data, ttl time.Duration) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	if data == nil {
		return fmt.Errorf("data cannot be nil")
	}

	entry := memoryEntry{data: *data}
	if data.Credential != nil {
		cred := *data.Credential
		entry.data.Credential = &cred
	}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = entry
	return nil
}

// Delete removes a session
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID) // Already gone is not an error
	return nil
}

// Len reports how many sessions are held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
