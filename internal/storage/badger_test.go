package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestEngine(t *testing.T) *BadgerEngine {
	t.Helper()

	cfg := DefaultKVConfig(t.TempDir())
	cfg.Badger.GCInterval = "1h" // Disable auto GC for tests
	cfg.Badger.SyncWrites = false

	engine, err := NewBadgerEngine(cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewBadgerEngine_RequiresDir(t *testing.T) {
	if _, err := NewBadgerEngine(KVConfig{}, nil); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestBadgerEngine_WriteTransaction(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	t.Run("Commit makes writes visible", func(t *testing.T) {
		txn, err := engine.BeginWrite()
		if err != nil {
			t.Fatal(err)
		}
		if err := txn.Set([]byte("a"), []byte("1")); err != nil {
			t.Fatal(err)
		}
		if err := txn.Set([]byte("b"), []byte("2")); err != nil {
			t.Fatal(err)
		}

		// Staged writes are not visible before commit
		if _, err := engine.Get(ctx, []byte("a")); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound before commit, got %v", err)
		}

		if err := txn.Commit(); err != nil {
			t.Fatal(err)
		}

		for k, want := range map[string]string{"a": "1", "b": "2"} {
			got, err := engine.Get(ctx, []byte(k))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != want {
				t.Errorf("Get(%s) = %s, want %s", k, got, want)
			}
		}
	})

	t.Run("Discard drops writes", func(t *testing.T) {
		txn, err := engine.BeginWrite()
		if err != nil {
			t.Fatal(err)
		}
		if err := txn.Set([]byte("a"), []byte("changed")); err != nil {
			t.Fatal(err)
		}
		txn.Discard()

		got, err := engine.Get(ctx, []byte("a"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "1" {
			t.Errorf("Get(a) = %s, want 1", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		txn, _ := engine.BeginWrite()
		if err := txn.Delete([]byte("b")); err != nil {
			t.Fatal(err)
		}
		if err := txn.Commit(); err != nil {
			t.Fatal(err)
		}

		if _, err := engine.Get(ctx, []byte("b")); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
	})

	t.Run("Use after commit", func(t *testing.T) {
		txn, _ := engine.BeginWrite()
		if err := txn.Commit(); err != nil {
			t.Fatal(err)
		}

		if err := txn.Set([]byte("c"), []byte("3")); !errors.Is(err, ErrTxnDone) {
			t.Errorf("Set after commit = %v, want ErrTxnDone", err)
		}
		if err := txn.Commit(); !errors.Is(err, ErrTxnDone) {
			t.Errorf("second Commit = %v, want ErrTxnDone", err)
		}
		txn.Discard() // no-op, must not release the lock twice
	})
}

func TestBadgerEngine_SingleWriter(t *testing.T) {
	engine := newTestEngine(t)

	first, err := engine.BeginWrite()
	if err != nil {
		t.Fatal(err)
	}

	acquired := make(chan struct{})
	go func() {
		second, err := engine.BeginWrite()
		if err == nil {
			second.Discard()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired the transaction while the first was open")
	case <-time.After(50 * time.Millisecond):
	}

	first.Discard()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second writer never acquired the transaction")
	}
}

func TestBadgerEngine_Scan(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	txn, _ := engine.BeginWrite()
	for k, v := range map[string]string{
		"setting/a": "1",
		"setting/b": "2",
		"setting/c": "3",
		"meta/x":    "data",
	} {
		if err := txn.Set([]byte(k), []byte(v)); err != nil {
			t.Fatal(err)
		}
	}
	if err := txn.Commit(); err != nil {
		t.Fatal(err)
	}

	t.Run("Scan with prefix", func(t *testing.T) {
		var keys []string
		err := engine.Scan(ctx, []byte("setting/"), func(key, value []byte) bool {
			keys = append(keys, string(key))
			return true
		})
		if err != nil {
			t.Fatal(err)
		}

		if len(keys) != 3 {
			t.Fatalf("expected 3 results, got %d", len(keys))
		}
		if keys[0] != "setting/a" || keys[2] != "setting/c" {
			t.Errorf("keys not in order: %v", keys)
		}
	})

	t.Run("Scan with early stop", func(t *testing.T) {
		count := 0
		err := engine.Scan(ctx, []byte("setting/"), func(key, value []byte) bool {
			count++
			return count < 2
		})
		if err != nil {
			t.Fatal(err)
		}
		if count != 2 {
			t.Errorf("expected 2 iterations, got %d", count)
		}
	})
}

func TestBadgerEngine_StatsAndBackup(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	txn, _ := engine.BeginWrite()
	txn.Set([]byte("k1"), []byte("v1"))
	txn.Set([]byte("k2"), []byte("v2"))
	if err := txn.Commit(); err != nil {
		t.Fatal(err)
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalKeys != 2 {
		t.Errorf("TotalKeys = %d, want 2", stats.TotalKeys)
	}

	var buf bytes.Buffer
	if err := engine.Backup(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("backup stream is empty")
	}

	if _, err := engine.GC(ctx); err != nil {
		t.Errorf("GC() error = %v", err)
	}
}

func TestBadgerEngine_RegisterMetrics(t *testing.T) {
	engine := newTestEngine(t)
	registry := prometheus.NewRegistry()

	engine.RegisterMetrics(registry)

	families, err := registry.Gather()
	if err != nil {
		t.Fatal(err)
	}

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"prefmirror_badger_lsm_size_bytes",
		"prefmirror_badger_value_log_size_bytes",
		"prefmirror_badger_total_size_bytes",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}

func TestBadgerEngine_Persistence(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultKVConfig(dir)
	cfg.Badger.GCInterval = "1h"
	ctx := context.Background()

	engine, err := NewBadgerEngine(cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	txn, _ := engine.BeginWrite()
	txn.Set([]byte("persist"), []byte("yes"))
	if err := txn.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBadgerEngine(cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, []byte("persist"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "yes" {
		t.Errorf("Get(persist) = %s, want yes", got)
	}
}

func TestBadgerEngine_Closed(t *testing.T) {
	cfg := DefaultKVConfig(t.TempDir())
	cfg.Badger.GCInterval = "1h"

	engine, err := NewBadgerEngine(cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}

	// Close is idempotent
	if err := engine.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}

	if _, err := engine.Get(context.Background(), []byte("k")); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after close = %v, want ErrClosed", err)
	}
	if _, err := engine.BeginWrite(); !errors.Is(err, ErrClosed) {
		t.Errorf("BeginWrite after close = %v, want ErrClosed", err)
	}
}
