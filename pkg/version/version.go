// Package version reports the build of create-fullstack.
package version

import (
	"fmt"
	"runtime/debug"
)

// Build-time variables injected via -ldflags:
//
//	-X github.com/fullstack-creator/create-fullstack/pkg/version.Version=v1.2.3
var (
	Version = "v1.0.0"
	Commit  = ""
	Date    = ""
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetCommit returns the build commit hash. Binaries built with go install
// carry it in their VCS stamp; "none" when neither source has it.
func GetCommit() string {
	if Commit != "" {
		return Commit
	}
	if rev := buildSetting("vcs.revision"); rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		return rev
	}
	return "none"
}

// GetDate returns the build date, or "unknown".
func GetDate() string {
	if Date != "" {
		return Date
	}
	if t := buildSetting("vcs.time"); t != "" {
		return t
	}
	return "unknown"
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", GetVersion(), GetCommit(), GetDate())
}

func buildSetting(key string) string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
