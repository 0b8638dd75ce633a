package main

import (
	"fmt"
	"os"

	"mocktree/internal/cli/commands"
)

// Set by goreleaser ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main exits non-zero when a command fails; cobra has already printed usage
// where it applies.
func main() {
	commands.SetVersion(version, commit, date)
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mocktree: %v\n", err)
		os.Exit(1)
	}
}
