package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaklabco/lintfilter/pkg/cachekey"
)

// Store persists transform artifacts keyed by content digest. Implementations
// must be safe for concurrent use; the runner calls Get and Put from its
// worker pool.
type Store interface {
	// Get returns the artifact stored under key. The second return is false
	// when the key has never been stored.
	Get(ctx context.Context, key cachekey.Digest) (*Artifact, bool, error)

	// Put stores an artifact under key, replacing any previous entry.
	Put(ctx context.Context, key cachekey.Digest, artifact *Artifact) error

	// Close releases the store's resources.
	Close() error
}

// MemoryStore is an in-process Store. It survives for the lifetime of the
// pipeline object, which is what makes rebuild passes over unchanged inputs
// cheap; it does not persist across processes.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[cachekey.Digest]*Artifact
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[cachekey.Digest]*Artifact)}
}

// Get returns a copy of the stored artifact, so callers can never mutate
// cached state.
func (s *MemoryStore) Get(ctx context.Context, key cachekey.Digest) (*Artifact, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("store get: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	artifact, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return artifact.Clone(), true, nil
}

// Put stores a copy of the artifact under key.
func (s *MemoryStore) Put(ctx context.Context, key cachekey.Digest, artifact *Artifact) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("store put: %w", err)
	}
	if artifact == nil {
		return fmt.Errorf("store put %s: nil artifact", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = artifact.Clone()
	return nil
}

// Close is a no-op for the in-process store.
func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
