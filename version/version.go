// Package version holds build information, set with -ldflags at build time
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of this build
	Version = "0.1.0-dev"
	// GitCommit is set by -ldflags at build time
	GitCommit = "n/a"
	// BuildDate is set by -ldflags at build time
	BuildDate = "n/a"
)

// Summary prints the version, or all build info when verbose is set
func Summary(verbose bool) string {
	if !verbose {
		return Version
	}
	return fmt.Sprintf(
		"version:\t%s\nbuild date:\t%s\ngit commit:\t%s\ngolang version:\t%s",
		Version,
		BuildDate,
		GitCommit,
		runtime.Version(),
	)
}
