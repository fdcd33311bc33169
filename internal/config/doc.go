// Package config provides configuration for the corekit utility layer.
//
// This package defines the configuration structure and validation:
//
//   - spec.go: Config struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation (timeouts, priority range, slot counts)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and maps.
package config
