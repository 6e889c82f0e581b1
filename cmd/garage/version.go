package main

import (
	"fmt"
	"runtime"
)

// Set through -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const shortCommitLen = 7

func versionString() string {
	return formatVersion(version, commit, date)
}

// formatVersion renders the text printed by `garage --version`.
func formatVersion(version, commit, date string) string {
	if len(commit) > shortCommitLen {
		commit = commit[:shortCommitLen]
	}
	return fmt.Sprintf("garage %s (%s, %s, %s)", version, commit, date, runtime.Version())
}
