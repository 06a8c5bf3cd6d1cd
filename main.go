package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/lakshaymaurya-felt/cleaninstall/cmd"
)

// Set by the release build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		// Cleanup failures were already reported by the run itself.
		if !errors.Is(err, cmd.ErrCleanupFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
