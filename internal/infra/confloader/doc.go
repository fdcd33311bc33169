// Package confloader loads corekit configuration from layered sources.
//
// Sources are merged in priority order: programmatic overrides > environment
// variables > YAML file > struct defaults. A file watcher is available for
// picking up edits to the config file at runtime.
package confloader
