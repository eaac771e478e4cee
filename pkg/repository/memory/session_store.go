package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/microbridge/pkg/onboarding"
)

type sessionEntry struct {
	session   onboarding.Session
	expiresAt time.Time
}

// SessionStore keeps wizard sessions in a map with a sliding TTL.
type SessionStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[uuid.UUID]sessionEntry
}

// NewSessionStore returns a store whose sessions expire ttl after their last save.
// A zero ttl keeps sessions forever.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, now: time.Now, data: make(map[uuid.UUID]sessionEntry)}
}

func (s *SessionStore) Get(_ context.Context, userID uuid.UUID) (onboarding.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[userID]
	if !ok {
		return onboarding.Session{}, onboarding.ErrNoSession
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.data, userID)
		return onboarding.Session{}, onboarding.ErrNoSession
	}
	return e.session, nil
}

func (s *SessionStore) Save(_ context.Context, sess onboarding.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.UserID] = sessionEntry{session: sess, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}
