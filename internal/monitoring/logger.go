// Package monitoring holds the diagnostic logger shared by the facade
// collaborators and the CLI.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// LogArtefact records one output file written for a facade run.
func LogArtefact(kind, path string, size int64) {
	Logf("facade: wrote %s %s (%d bytes)", kind, path, size)
}
