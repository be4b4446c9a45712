package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Engine != DefaultEngine {
		t.Errorf("Storage.Engine = %q, want %q", cfg.Storage.Engine, DefaultEngine)
	}
	if !cfg.Storage.SyncWrites {
		t.Error("Storage.SyncWrites should default to true")
	}
	if cfg.Storage.DataDir == "" {
		t.Error("Storage.DataDir should not be empty")
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Watch.MinInterval != time.Second || cfg.Watch.Burst != 1 {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "memory engine skips data dir", modify: func(c *Config) {
			c.Storage.Engine = "memory"
			c.Storage.DataDir = ""
		}},
		{name: "unknown engine", modify: func(c *Config) { c.Storage.Engine = "bolt" }, wantErr: "storage.engine"},
		{name: "empty data dir", modify: func(c *Config) { c.Storage.DataDir = "" }, wantErr: "storage.data_dir"},
		{name: "zero gc interval", modify: func(c *Config) { c.Storage.GCInterval = 0 }, wantErr: "storage.gc_interval"},
		{name: "gc threshold out of range", modify: func(c *Config) { c.Storage.GCThreshold = 1.5 }, wantErr: "storage.gc_threshold"},
		{name: "bad log level", modify: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
		{name: "bad log format", modify: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "zero burst", modify: func(c *Config) { c.Watch.Burst = 0 }, wantErr: "watch.burst"},
		{name: "negative interval", modify: func(c *Config) { c.Watch.MinInterval = -time.Second }, wantErr: "watch.min_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
			tt.modify(cfg)

			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Verify() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestStorageSection_KVConfig(t *testing.T) {
	s := Default().Storage
	s.DataDir = "/data"
	s.SyncWrites = false
	s.GCInterval = 5 * time.Minute

	kv := s.KVConfig()

	if kv.Engine != "badger" || kv.Dir != "/data" {
		t.Errorf("KVConfig() = %+v", kv)
	}
	if kv.Badger.SyncWrites {
		t.Error("SyncWrites not carried over")
	}
	if kv.Badger.GCInterval != "5m0s" {
		t.Errorf("GCInterval = %q, want 5m0s", kv.Badger.GCInterval)
	}
	if kv.Badger.CacheSize != DefaultCacheSize {
		t.Errorf("CacheSize = %d", kv.Badger.CacheSize)
	}
}
