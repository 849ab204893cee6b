// Package version carries build metadata stamped in via -ldflags, e.g.
//
//	go build -ldflags "-X github.com/banshee-data/parametric-facade/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns "<version>+<short sha>" for export metadata.
func String() string {
	sha := GitSHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	return fmt.Sprintf("%s+%s", Version, sha)
}

// Banner is the one-line description printed by -version.
func Banner(program string) string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", program, Version, GitSHA, BuildTime)
}
