// Package config defines the corekit configuration structure.
package config

import "time"

// Config is the root configuration for the corekit utility layer.
type Config struct {
	Thread  ThreadSection  `koanf:"thread"`
	HashMap HashMapSection `koanf:"hashmap"`
	Log     LogSection     `koanf:"log"`
}

// ThreadSection configures worker thread behavior.
type ThreadSection struct {
	// StopTimeout is the per-thread budget for cooperative shutdown
	// before a worker is abandoned.
	StopTimeout time.Duration `koanf:"stop_timeout"`

	// DefaultPriority is the priority workers start with, 0 (lowest)
	// to 10 (highest).
	DefaultPriority int `koanf:"default_priority"`
}

// HashMapSection configures hash table defaults.
type HashMapSection struct {
	// InitialSlots is the slot count new tables start with. Tables grow
	// on their own past a 1.5 load factor; this only sets the floor.
	InitialSlots int `koanf:"initial_slots"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
