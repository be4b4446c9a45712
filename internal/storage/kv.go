package storage

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
	ErrTxnDone     = errors.New("transaction already committed or discarded")
)

// Engine defines the contract shared by all settings storage engines.
//
// Implementation requirements:
//   - Thread-safe: concurrent reads and a single writer must be safe
//   - Atomic: a write transaction's staged changes become visible together
//   - Read-after-commit: Get returns the value written by the last committed transaction
type Engine interface {
	// Get retrieves a committed value by key.
	// Returns ErrKeyNotFound if key doesn't exist.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Scan iterates over committed keys with a given prefix in key order.
	// Callback returns false to stop iteration.
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error

	// BeginWrite opens the write transaction, blocking while another is open.
	// The caller must Commit or Discard it.
	BeginWrite() (Txn, error)

	// Stats returns storage statistics.
	Stats(ctx context.Context) (*KVStats, error)

	// Close gracefully shuts down the engine.
	Close() error
}

// Txn is an open write transaction.
//
// Writes are staged and invisible to readers until Commit returns nil.
// Discard after Commit is a no-op, so callers can always defer Discard.
type Txn interface {
	Set(key, value []byte) error
	Delete(key []byte) error
	Commit() error
	Discard()
}

// KVStats contains storage engine statistics.
type KVStats struct {
	// TotalKeys is the number of keys, when the engine can count them cheaply.
	TotalKeys uint64

	// TotalSize is the total disk (or memory) usage in bytes.
	TotalSize uint64

	// LSMSize is the LSM tree size (Badger only).
	LSMSize uint64

	// ValueLogSize is the value log size (Badger only).
	ValueLogSize uint64

	// LastGCTime is the last GC run timestamp (Unix milliseconds).
	LastGCTime int64

	// GCBytesReclaimed is the total bytes reclaimed by GC.
	GCBytesReclaimed uint64
}

// KVConfig configures an embedded KV engine.
type KVConfig struct {
	// Engine specifies the KV engine type ("badger", "memory").
	// Default: "badger"
	Engine string

	// Dir is the storage directory.
	Dir string

	// Badger-specific configuration
	Badger BadgerConfig
}

// BadgerConfig contains Badger-specific tuning parameters.
type BadgerConfig struct {
	// GCInterval is the interval between automatic GC runs.
	// Default: 10m
	GCInterval string

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 8MB (the settings key space is tiny)
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 64MB
	ValueLogFileSize int64

	// NumMemtables is the number of memtables.
	// Default: 2
	NumMemtables int

	// SyncWrites enables sync writes (fsync on every commit).
	// Default: true, a committed settings batch must survive a crash
	SyncWrites bool
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Engine: "badger",
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       "10m",
		GCThreshold:      0.5,
		CacheSize:        8 << 20,  // 8MB
		ValueLogFileSize: 64 << 20, // 64MB
		NumMemtables:     2,
		SyncWrites:       true,
	}
}
