package config

import (
	"time"

	"github.com/yndnr/prefmirror/internal/storage"
)

// Config is the root configuration for prefmirror.
type Config struct {
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
	Metrics MetricsSection `koanf:"metrics"`
	Watch   WatchSection   `koanf:"watch"`
}

// StorageSection configures the settings store.
type StorageSection struct {
	// Engine is "badger" or "memory". The memory engine keeps nothing
	// across runs.
	Engine      string        `koanf:"engine"`
	DataDir     string        `koanf:"data_dir"`
	SyncWrites  bool          `koanf:"sync_writes"`
	GCInterval  time.Duration `koanf:"gc_interval"`
	GCThreshold float64       `koanf:"gc_threshold"`
	CacheSize   int64         `koanf:"cache_size"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsSection configures metric export.
type MetricsSection struct {
	// Textfile, when set, receives the registry after every command in
	// node-exporter textfile format.
	Textfile string `koanf:"textfile"`
	// Listen, when set, serves /metrics while the watch command runs.
	Listen string `koanf:"listen"`
}

// WatchSection configures the watch command.
type WatchSection struct {
	// MinInterval is the minimum time between two applied saves.
	MinInterval time.Duration `koanf:"min_interval"`
	// Burst is the number of saves allowed back to back.
	Burst int `koanf:"burst"`
}

// KVConfig converts the storage section to the engine configuration.
func (s StorageSection) KVConfig() storage.KVConfig {
	kv := storage.DefaultKVConfig(s.DataDir)
	kv.Engine = s.Engine
	kv.Badger.SyncWrites = s.SyncWrites
	kv.Badger.GCInterval = s.GCInterval.String()
	kv.Badger.GCThreshold = s.GCThreshold
	if s.CacheSize > 0 {
		kv.Badger.CacheSize = s.CacheSize
	}
	return kv
}
