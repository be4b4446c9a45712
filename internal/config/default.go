package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultEngine      = "badger"
	DefaultGCInterval  = 10 * time.Minute
	DefaultGCThreshold = 0.5
	DefaultCacheSize   = 8 << 20

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	DefaultWatchInterval = time.Second
	DefaultWatchBurst    = 1
)

// DefaultDataDir returns the per-user data directory, falling back to a
// relative directory when the user config dir is unknown.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".prefmirror", "data")
	}
	return filepath.Join(dir, "prefmirror", "data")
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageSection{
			Engine:      DefaultEngine,
			DataDir:     DefaultDataDir(),
			SyncWrites:  true,
			GCInterval:  DefaultGCInterval,
			GCThreshold: DefaultGCThreshold,
			CacheSize:   DefaultCacheSize,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Watch: WatchSection{
			MinInterval: DefaultWatchInterval,
			Burst:       DefaultWatchBurst,
		},
	}
}
