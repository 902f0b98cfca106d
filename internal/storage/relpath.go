package storage

import (
	"path/filepath"
	"strings"
)

// relativeTo computes the path that reaches target when resolved from
// fromDir: walk up to the deepest common ancestor, then down to target.
// It works on the path strings alone, so symlink targets can be
// computed before anything exists on disk. Both arguments must be
// either both absolute or both relative to the same root.
func relativeTo(fromDir, target string) string {
	from := splitSegments(fromDir)
	to := splitSegments(target)

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	segments := make([]string, 0, len(from)-common+len(to)-common)
	for i := common; i < len(from); i++ {
		segments = append(segments, "..")
	}
	segments = append(segments, to[common:]...)

	return filepath.Join(segments...)
}

func splitSegments(p string) []string {
	p = filepath.Clean(p)
	if p == "." || p == string(filepath.Separator) {
		return nil
	}
	p = strings.TrimPrefix(p, string(filepath.Separator))
	return strings.Split(p, string(filepath.Separator))
}
