package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/yndnr/prefmirror/internal/storage"
	"github.com/yndnr/prefmirror/internal/telemetry/logger"
)

// KeyPrefix is the storage key space shared by every setting.
const KeyPrefix = "setting/"

// Reader reads committed values. storage.Engine satisfies it.
type Reader interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
}

// Writer stages values into an open write transaction. storage.Txn
// satisfies it.
type Writer interface {
	Set(key, value []byte) error
}

// Descriptor is the type-erased view of a catalog key.
type Descriptor interface {
	Name() string
	Type() string
	DefaultString() string
	StorageKey() []byte
}

// Key is one persisted setting of type T.
type Key[T any] struct {
	name  string
	codec Codec[T]
	def   func() T
}

// Name returns the setting name.
func (k *Key[T]) Name() string { return k.name }

// Type returns the value type name.
func (k *Key[T]) Type() string { return k.codec.Type() }

// Default returns the default value. It has no side effects.
func (k *Key[T]) Default() T { return k.def() }

// DefaultString returns the default in text form.
func (k *Key[T]) DefaultString() string { return k.codec.Format(k.def()) }

// StorageKey returns the key bytes the value is persisted under.
func (k *Key[T]) StorageKey() []byte { return []byte(KeyPrefix + k.name) }

// Parse converts text to a value of the key's type.
func (k *Key[T]) Parse(s string) (T, error) { return k.codec.Parse(s) }

// Format converts a value of the key's type to text.
func (k *Key[T]) Format(v T) string { return k.codec.Format(v) }

// Read returns the persisted value, or the default when the key is absent,
// unreadable or undecodable. It never fails.
func (k *Key[T]) Read(ctx context.Context, r Reader) T {
	raw, err := r.Get(ctx, k.StorageKey())
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logger.L(ctx).Warn("setting read failed, using default",
				"key", k.name,
				"error", err,
			)
		}
		return k.Default()
	}

	v, err := k.codec.Decode(raw)
	if err != nil {
		logger.L(ctx).Warn("setting value undecodable, using default",
			"key", k.name,
			"error", err,
		)
		return k.Default()
	}
	return v
}

// Write stages v into the open transaction w.
func (k *Key[T]) Write(v T, w Writer) error {
	b, err := k.codec.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", k.name, err)
	}
	if err := w.Set(k.StorageKey(), b); err != nil {
		return fmt.Errorf("write %s: %w", k.name, err)
	}
	return nil
}
