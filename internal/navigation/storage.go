package navigation

import (
	"sync"

	"github.com/gorilla/sessions"
)

// Storage is the persistent key/value storage behind the store
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// MemoryStorage is an in-process Storage
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates a new memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStorage) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// SessionStorage adapts a gorilla session. Changes reach the browser when
// the session is saved.
type SessionStorage struct {
	session *sessions.Session
}

// NewSessionStorage creates a storage over session
func NewSessionStorage(session *sessions.Session) *SessionStorage {
	return &SessionStorage{session: session}
}

func (s *SessionStorage) Get(key string) (string, bool) {
	v, ok := s.session.Values[key].(string)
	return v, ok
}

func (s *SessionStorage) Set(key, value string) {
	s.session.Values[key] = value
}

func (s *SessionStorage) Remove(key string) {
	delete(s.session.Values, key)
}
