// Package buildinfo reports the corekit build version.
//
// Version is injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/corekit-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Commit and Go version fall back to the module build metadata that the
// toolchain embeds in the binary.
package buildinfo
