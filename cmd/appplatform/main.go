package main

import (
	"context"
	"runtime"

	"github.com/ubytes/appplatform/internal/cli/cmd"
	"github.com/ubytes/appplatform/internal/domain/build"
	"github.com/ubytes/appplatform/internal/logging"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// The UI toolkit must be driven from the process main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	prepareCrashDumps(logging.WithContext(context.Background(), logging.NewFromEnv()))

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
