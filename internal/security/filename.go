// Package security guards the file names the generator derives from
// configuration input.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// maxNameLen bounds a sanitised name.
const maxNameLen = 128

// SanitizeName turns an arbitrary facade name into a file name stem. Runs
// of characters outside [A-Za-z0-9._-] collapse to one underscore and
// leading or trailing dots and underscores are trimmed. An empty result
// becomes "facade".
func SanitizeName(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		if b.Len() >= maxNameLen {
			break
		}
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '_' || r == '-'
		if !ok {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte('_')
		}
		pending = false
		b.WriteRune(r)
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "facade"
	}
	return out
}

// OutputPath returns dir/<sanitised name><ext>. It fails if the cleaned
// result would resolve outside dir.
func OutputPath(dir, name, ext string) (string, error) {
	base := filepath.Clean(dir)
	path := filepath.Join(base, SanitizeName(name)+ext)

	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", fmt.Errorf("output path for %q: %w", name, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("output path for %q escapes %s", name, dir)
	}
	return path, nil
}
