package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/forms"
)

type memoryEntry struct {
	owner     string
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps drafts in process memory. Drafts are stored encoded so
// callers never share a draft value with the store.
type MemoryStore struct {
	mu     sync.Mutex
	clock  clock.Clock
	ttl    time.Duration
	drafts map[string]memoryEntry
	locks  map[string]bool
}

// NewMemoryStore creates a new in-memory draft store
func NewMemoryStore(clk clock.Clock, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		clock:  clk,
		ttl:    ttl,
		drafts: make(map[string]memoryEntry),
		locks:  make(map[string]bool),
	}
}

func (s *MemoryStore) Save(ctx context.Context, d *forms.EventDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = memoryEntry{owner: d.Owner, data: data, expiresAt: s.clock.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*forms.EventDraft, error) {
	s.mu.Lock()
	entry, ok := s.drafts[id]
	if ok && !s.clock.Now().Before(entry.expiresAt) {
		delete(s.drafts, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrDraftNotFound
	}
	var d forms.EventDraft
	if err := json.Unmarshal(entry.data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &d, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

func (s *MemoryStore) DeleteOwner(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.drafts {
		if entry.owner == owner {
			delete(s.drafts, id)
		}
	}
	return nil
}

func (s *MemoryStore) Lock(ctx context.Context, id string) (func() error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[id] {
		return nil, ErrLocked
	}
	s.locks[id] = true

	var once sync.Once
	return func() error {
		once.Do(func() {
			s.mu.Lock()
			delete(s.locks, id)
			s.mu.Unlock()
		})
		return nil
	}, nil
}

// Sweep drops expired drafts and returns how many were removed
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	removed := 0
	for id, entry := range s.drafts {
		if !now.Before(entry.expiresAt) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
