package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-finder/internal/weather"
)

var (
	// ErrNotFound is returned when no session exists for an id.
	ErrNotFound = errors.New("session not found")
)

// session is one client's orchestrator plus its bookkeeping.
type session struct {
	orchestrator *weather.Orchestrator
	lastSeen     time.Time
}

// MemoryStore is a concurrency-safe in-memory session store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*session

	// retention configuration
	maxSessions int           // max number of live sessions
	maxIdle     time.Duration // sessions unused for longer are swept

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSessions or maxIdle is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSessions int, maxIdle time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*session),
		maxSessions: maxSessions,
		maxIdle:     maxIdle,
		now:         time.Now,
	}
}

// Create registers o under a fresh id. When the store is full the least recently
// seen session is evicted.
func (s *MemoryStore) Create(o *weather.Orchestrator) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.evictOldestLocked()
	}

	s.data[id] = &session{orchestrator: o, lastSeen: s.now()}
	return id
}

// Get returns the orchestrator for id and marks the session as seen.
func (s *MemoryStore) Get(id string) (*weather.Orchestrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.lastSeen = s.now()
	return sess.orchestrator, nil
}

// Delete removes the session and cancels whatever it has in flight.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	sess.orchestrator.Close()
	delete(s.data, id)
	return nil
}

// Sweep removes sessions idle for longer than maxIdle and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.maxIdle <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxIdle)
	removed := 0
	for id, sess := range s.data {
		if sess.lastSeen.Before(cutoff) {
			sess.orchestrator.Close()
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.data {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID = id
			oldest = sess.lastSeen
		}
	}
	if oldestID != "" {
		s.data[oldestID].orchestrator.Close()
		delete(s.data, oldestID)
	}
}
