package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/yndnr/prefmirror/internal/storage"
)

// Store is an in-memory storage.Engine.
type Store struct {
	mu     sync.RWMutex
	items  map[string][]byte
	size   uint64
	closed atomic.Bool

	// writeMu is held for the lifetime of the open write transaction.
	writeMu sync.Mutex

	commits atomic.Uint64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		items: make(map[string][]byte),
	}
}

// Get retrieves a committed value by key.
func (s *Store) Get(_ context.Context, key []byte) ([]byte, error) {
	if s.closed.Load() {
		return nil, storage.ErrClosed
	}

	s.mu.RLock()
	value, ok := s.items[string(key)]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.ErrKeyNotFound
	}

	return bytes.Clone(value), nil
}

// Scan iterates over committed keys with a given prefix in key order.
func (s *Store) Scan(_ context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	if s.closed.Load() {
		return storage.ErrClosed
	}

	// Copy matches so fn may call back into the store
	s.mu.RLock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	values := make(map[string][]byte, len(keys))
	for _, k := range keys {
		values[k] = bytes.Clone(s.items[k])
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if !fn([]byte(k), values[k]) {
			break
		}
	}
	return nil
}

// BeginWrite opens the write transaction, blocking while another is open.
func (s *Store) BeginWrite() (storage.Txn, error) {
	if s.closed.Load() {
		return nil, storage.ErrClosed
	}

	s.writeMu.Lock()
	if s.closed.Load() {
		s.writeMu.Unlock()
		return nil, storage.ErrClosed
	}

	return &txn{store: s}, nil
}

// Stats returns the key count and the summed key and value sizes.
func (s *Store) Stats(_ context.Context) (*storage.KVStats, error) {
	if s.closed.Load() {
		return nil, storage.ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return &storage.KVStats{
		TotalKeys: uint64(len(s.items)),
		TotalSize: s.size,
	}, nil
}

// Commits returns the number of committed write transactions.
func (s *Store) Commits() uint64 {
	return s.commits.Load()
}

// Close marks the store closed after any open write transaction finishes.
func (s *Store) Close() error {
	s.writeMu.Lock()
	s.closed.Store(true)
	s.writeMu.Unlock()
	return nil
}

// apply installs staged operations atomically with respect to readers.
func (s *Store) apply(ops []op) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range ops {
		if old, ok := s.items[o.key]; ok {
			s.size -= uint64(len(o.key) + len(old))
			delete(s.items, o.key)
		}
		if !o.del {
			s.items[o.key] = o.value
			s.size += uint64(len(o.key) + len(o.value))
		}
	}
	s.commits.Add(1)
}

type op struct {
	key   string
	value []byte
	del   bool
}

// txn stages operations until Commit.
type txn struct {
	store *Store
	ops   []op
	done  bool
}

func (t *txn) Set(key, value []byte) error {
	if t.done {
		return storage.ErrTxnDone
	}
	t.ops = append(t.ops, op{key: string(key), value: bytes.Clone(value)})
	return nil
}

func (t *txn) Delete(key []byte) error {
	if t.done {
		return storage.ErrTxnDone
	}
	t.ops = append(t.ops, op{key: string(key), del: true})
	return nil
}

func (t *txn) Commit() error {
	if t.done {
		return storage.ErrTxnDone
	}
	t.done = true
	defer t.store.writeMu.Unlock()

	t.store.apply(t.ops)
	t.ops = nil
	return nil
}

func (t *txn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.ops = nil
	t.store.writeMu.Unlock()
}
