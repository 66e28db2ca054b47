// Package memory provides in-process adapters: a note store and a document loader.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
)

// Store implements ports.NoteStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

var _ ports.NoteStore = (*Store)(nil)

// Save copies data so later writes by the caller do not leak in.
func (s *Store) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte{}, data...)
	return nil
}

// Load returns a copy of the blob stored under key.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return append([]byte{}, data...), nil
}
