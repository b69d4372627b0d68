// Package session owns one sales ledger per shopkeeper session.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/ledger"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        uuid.UUID
	Ledger    *ledger.Ledger
	CreatedAt time.Time
	lastSeen  time.Time
}

// Store keeps sessions in memory and forgets them after idleTTL without use.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Create starts a session with an empty ledger.
func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.New(),
		Ledger:    ledger.New(),
		CreatedAt: now,
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session for a textual id and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[parsed]
	if !ok || s.expired(sess) {
		delete(s.sessions, parsed)
		return nil, ErrNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

// Sweep drops idle sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session) bool {
	return s.idleTTL > 0 && s.now().Sub(sess.lastSeen) > s.idleTTL
}
