// SPDX-License-Identifier:Apache-2.0

// Package version reports build information stamped in at release
// time.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	version   = ""   // Filled out during release cutting
	gitCommit string // Provided by ldflags during build
	gitBranch string // Provided by ldflags during build
)

// String returns a human-readable version string.
func String() string {
	hasVersion := version != ""
	hasBuildInfo := commit() != ""

	switch {
	case hasVersion && hasBuildInfo:
		return fmt.Sprintf("version %s (commit %s, branch %s)", version, commit(), gitBranch)
	case !hasVersion && hasBuildInfo:
		return fmt.Sprintf("(commit %s, branch %s)", commit(), gitBranch)
	case hasVersion && !hasBuildInfo:
		return fmt.Sprintf("version %s (no build information)", version)
	default:
		return "(no version or build info)"
	}
}

// Version returns the version string.
func Version() string { return version }

// CommitHash returns the commit hash at which the binary was built.
func CommitHash() string { return commit() }

// Branch returns the branch at which the binary was built.
func Branch() string { return gitBranch }

// GoString returns the Go version the binary was built with.
func GoString() string { return runtime.Version() }

// commit prefers the ldflags-provided hash and falls back to the VCS
// info the Go toolchain embeds.
func commit() string {
	if gitCommit != "" {
		return gitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
