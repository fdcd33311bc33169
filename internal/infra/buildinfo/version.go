package buildinfo

import (
	"runtime"
	"runtime/debug"
)

// Version is the semantic version, set via ldflags.
var Version = "dev"

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Modified  bool   `json:"modified"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information, reading commit details from the
// metadata embedded by the Go toolchain when available.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    "unknown",
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Commit = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	return info
}

// String returns a single-line version string.
func String() string {
	info := Get()
	commit := info.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	s := info.Version + " (" + commit + ")"
	if info.Modified {
		s += " dirty"
	}
	return s
}
