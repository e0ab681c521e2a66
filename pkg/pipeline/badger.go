package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/yaklabco/lintfilter/pkg/cachekey"
)

// BadgerConfig holds configuration for a disk-backed artifact store.
type BadgerConfig struct {
	// Dir is the directory for database files. Created if missing.
	// Ignored when InMemory is true.
	Dir string

	// InMemory keeps the database entirely in RAM. Useful for tests and
	// single-run pipelines that still want the badger store wired in.
	InMemory bool

	// SyncWrites forces every write to disk before returning. Slower, but
	// a crash never loses committed cache entries.
	SyncWrites bool
}

// DefaultBadgerConfig returns the persistent configuration for dir.
func DefaultBadgerConfig(dir string) BadgerConfig {
	return BadgerConfig{Dir: dir, SyncWrites: true}
}

// InMemoryBadgerConfig returns a configuration with no disk persistence.
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{InMemory: true}
}

// BadgerStore is a Store backed by BadgerDB. Unlike MemoryStore it survives
// process restarts, so a fresh build can replay lint results for files that
// have not changed since the previous build.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// OpenBadgerStore opens (or creates) the store described by cfg.
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, errors.New("badger store: dir is required for persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	// Badger's own logging is noise inside a build pipeline.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get loads and decodes the artifact stored under key.
func (s *BadgerStore) Get(ctx context.Context, key cachekey.Digest) (*Artifact, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("store get: %w", err)
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store get %s: %w", key, err)
	}

	artifact, err := DecodeArtifact(data)
	if err != nil {
		return nil, false, fmt.Errorf("store get %s: %w", key, err)
	}
	return artifact, true, nil
}

// Put encodes and stores an artifact under key.
func (s *BadgerStore) Put(ctx context.Context, key cachekey.Digest, artifact *Artifact) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("store put: %w", err)
	}
	data, err := EncodeArtifact(artifact)
	if err != nil {
		return fmt.Errorf("store put %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("store put %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
