package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cchalm/greetings/app/greetings/cmd"
)

// Version information set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cmd.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cmd.Execute(); err != nil {
		// A failed run has already been reported to the runner
		if !errors.Is(err, cmd.ErrRunFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
