package session

import (
	"strconv"
	"sync"
)

// InMemoryStore is used by tests and local scenarios.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Identity
	flashes  map[string]string
	nextID   int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]Identity),
		flashes:  make(map[string]string),
		nextID:   1,
	}
}

func (s *InMemoryStore) Create(identity Identity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := "sess-" + strconv.Itoa(s.nextID)
	s.nextID++
	s.sessions[id] = identity
	return id, nil
}

func (s *InMemoryStore) Get(id string) (Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.sessions[id]
	return identity, ok, nil
}

func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *InMemoryStore) SetFlash(id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes[id] = message
	return nil
}

func (s *InMemoryStore) PopFlash(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flashes[id]
	delete(s.flashes, id)
	return msg, nil
}
