package artifact

import "sync"

// InMemoryStore keeps transcripts in a nested map guarded by an RWMutex.
// Bytes are copied on save and retrieval so callers cannot mutate stored
// data through shared slices. There is no retention limit or eviction; for
// anything beyond tests and single-process prototypes use a durable backend.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[string]map[string][]byte // sessionID -> runID -> transcript
}

// NewInMemoryStore returns an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{runs: make(map[string]map[string][]byte)}
}

// Save implements Store.
func (s *InMemoryStore) Save(sessionID, runID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[sessionID]; !ok {
		s.runs[sessionID] = make(map[string][]byte)
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	s.runs[sessionID][runID] = cp

	return nil
}

// Get implements Store.
func (s *InMemoryStore) Get(sessionID, runID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.runs[sessionID][runID]
	if !ok {
		return nil, ErrNotFound
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	return cp, nil
}

// List implements Store. The returned slice is a snapshot and safe for
// caller mutation.
func (s *InMemoryStore) List(sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.runs[sessionID]
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}

	return ids, nil
}

// Delete implements Store.
func (s *InMemoryStore) Delete(sessionID, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.runs[sessionID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[runID]; !ok {
		return ErrNotFound
	}
	delete(m, runID)

	return nil
}
