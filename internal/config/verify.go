// Package config defines the corekit configuration structure.
package config

import (
	"errors"
	"fmt"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyThread(&cfg.Thread); err != nil {
		return err
	}
	if err := verifyHashMap(&cfg.HashMap); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyThread(cfg *ThreadSection) error {
	if cfg.StopTimeout == 0 {
		return errors.New("thread.stop_timeout must be non-zero (negative waits forever)")
	}
	if cfg.DefaultPriority < 0 || cfg.DefaultPriority > 10 {
		return fmt.Errorf("thread.default_priority %d outside [0, 10]", cfg.DefaultPriority)
	}
	return nil
}

func verifyHashMap(cfg *HashMapSection) error {
	if cfg.InitialSlots < 1 {
		return fmt.Errorf("hashmap.initial_slots must be positive, got %d", cfg.InitialSlots)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not a known level", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not a known format", cfg.Format)
	}
	return nil
}
