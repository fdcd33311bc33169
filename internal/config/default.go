// Package config defines the corekit configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultStopTimeout     = 5 * time.Second
	DefaultThreadPriority  = 5
	DefaultHashMapSlots    = 101

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Thread: ThreadSection{
			StopTimeout:     DefaultStopTimeout,
			DefaultPriority: DefaultThreadPriority,
		},
		HashMap: HashMapSection{
			InitialSlots: DefaultHashMapSlots,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
