// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/qrlabels/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/qrlabels/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/qrlabels/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Name is the program name used in document metadata.
const Name = "qrlabels"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Creator returns the producer string recorded in generated documents,
// e.g. "qrlabels dev (run 5f0c...)".
func Creator(runID string) string {
	if runID == "" {
		return Name + " " + Version
	}
	return fmt.Sprintf("%s %s (run %s)", Name, Version, runID)
}
