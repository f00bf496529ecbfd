// Package memory is an in-process session store for single-node deployments
// and tests. Entries expire lazily on read.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clefworks/scorebook/internal/catalog/session"
)

type entry struct {
	subjectID string
	expiresAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewStoreWithClock injects a clock for expiry tests.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

func (s *Store) Put(_ context.Context, tokenID, subjectID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenID] = entry{
		subjectID: subjectID,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *Store) Get(_ context.Context, tokenID string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[tokenID]
	s.mu.RUnlock()

	if !ok {
		return "", session.ErrNotFound
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, tokenID)
		s.mu.Unlock()
		return "", session.ErrNotFound
	}
	return e.subjectID, nil
}

func (s *Store) Delete(_ context.Context, tokenIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range tokenIDs {
		delete(s.entries, id)
	}
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
