package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sweepInterval bounds how often Create scans for expired sessions.
const sweepInterval = time.Minute

// MemoryStore keeps sessions in process memory. Expired entries are
// dropped on lookup, and Create sweeps the rest at most once per
// sweepInterval.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryStore creates a store whose sessions live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID int64, username string) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	if !now.Before(s.nextSweep) {
		s.sweepLocked(now)
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	cp := *sess
	return &cp, nil
}

// sweepLocked drops every expired session. The caller holds mu.
func (s *MemoryStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
		}
	}
	s.nextSweep = now.Add(sweepInterval)
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	if sess.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	cp := *sess
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, including expired ones not
// yet collected.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
