package memory

import (
	"sync"
	"time"
)

// Exchange is one completed orchestration cycle: the goal that started it and
// the summary it produced.
type Exchange struct {
	Goal      string    `json:"goal"`
	Summary   string    `json:"summary"`
	Timestamp time.Time `json:"timestamp"`
}

// Store records exchanges per session and returns them in insertion order.
type Store interface {
	Save(sessionID string, ex Exchange) error
	History(sessionID string) ([]Exchange, error)
}

// InMemoryStore is a process-local Store.
//
// Concurrency: protected by RWMutex. History returns a copy so callers can
// iterate without holding the lock.
type InMemoryStore struct {
	mu        sync.RWMutex
	exchanges map[string][]Exchange // sessionID -> ordered exchanges
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{exchanges: make(map[string][]Exchange)}
}

// Save appends the exchange to the session's history. A zero Timestamp is
// filled with the current time.
func (s *InMemoryStore) Save(sessionID string, ex Exchange) error {
	if ex.Timestamp.IsZero() {
		ex.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges[sessionID] = append(s.exchanges[sessionID], ex)
	return nil
}

// History returns the session's exchanges in insertion order.
func (s *InMemoryStore) History(sessionID string) ([]Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.exchanges[sessionID]
	out := make([]Exchange, len(history))
	copy(out, history)
	return out, nil
}
