package session

import (
	"context"
	"sync"
	"time"

	domain "userdeck/internal/domain/user"
)

type entry struct {
	state   domain.State
	expires time.Time
}

// MemoryStore keeps session state in process memory. Expired entries are
// dropped when they are next read.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewMemoryStore creates an in-memory store whose entries live for ttl after
// their last save.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the stored state, or nil when the session is unknown or expired.
func (m *MemoryStore) Get(_ context.Context, sessionID string) (*domain.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[sessionID]
	if !ok {
		return nil, nil
	}
	if m.now().After(e.expires) {
		delete(m.entries, sessionID)
		return nil, nil
	}

	s := e.state
	s.Users = append([]domain.User(nil), e.state.Users...)
	return &s, nil
}

// Save stores state for the session, replacing whatever was there.
func (m *MemoryStore) Save(_ context.Context, sessionID string, state domain.State) error {
	state.Users = append([]domain.User(nil), state.Users...)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[sessionID] = entry{state: state, expires: m.now().Add(m.ttl)}
	return nil
}

// Delete forgets the session.
func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sessionID)
	return nil
}
