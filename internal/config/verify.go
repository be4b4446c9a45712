package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Verify validates the configuration. For the badger engine it also
// creates the data directory.
func Verify(cfg *Config) error {
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if err := verifyWatch(&cfg.Watch); err != nil {
		return err
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	switch cfg.Engine {
	case "memory":
		return nil
	case "badger":
	default:
		return fmt.Errorf("storage.engine must be badger or memory, got %q", cfg.Engine)
	}

	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}

	if cfg.GCInterval <= 0 {
		return errors.New("storage.gc_interval must be positive")
	}
	if cfg.GCThreshold <= 0 || cfg.GCThreshold >= 1 {
		return errors.New("storage.gc_threshold must be between 0 and 1")
	}
	if cfg.CacheSize < 0 {
		return errors.New("storage.cache_size must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}

func verifyWatch(cfg *WatchSection) error {
	if cfg.MinInterval < 0 {
		return errors.New("watch.min_interval must not be negative")
	}
	if cfg.Burst < 1 {
		return errors.New("watch.burst must be at least 1")
	}
	return nil
}
