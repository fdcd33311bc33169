// Package logger provides structured logging for corekit.
//
// It wraps the standard library log/slog to provide structured JSON
// logging for the utility layer and the workers built on it.
//
// Features:
//   - JSON structured logging (default), text for consoles
//   - Dynamic log level adjustment at runtime
//   - A no-op logger for tests and embedders that bring their own
package logger
