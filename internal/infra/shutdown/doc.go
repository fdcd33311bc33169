// Package shutdown coordinates graceful process teardown for corekit.
//
// It handles:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic triggering for embedded use and tests
//   - Named cleanup hooks, run in reverse registration order
//   - A per-shutdown deadline shared by all hooks
package shutdown
