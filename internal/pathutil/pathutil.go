package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxPath bounds the length of any composed path. Paths that would
// exceed it are skipped rather than handed to the OS, which would
// reject them with a less helpful error at open/mkdir time.
const MaxPath = 4096

// Fits reports whether path is within MaxPath.
func Fits(path string) bool {
	return len(path) < MaxPath
}

// TrimTrailingSeparators strips trailing path separators from path.
// A root path ("/") is never reduced to the empty string.
func TrimTrailingSeparators(path string) string {
	for len(path) > 1 && os.IsPathSeparator(path[len(path)-1]) {
		path = path[:len(path)-1]
	}
	return path
}

// Basename returns the final component of path after trailing
// separators are stripped, so "/a/dir/" yields "dir".
func Basename(path string) string {
	return filepath.Base(TrimTrailingSeparators(path))
}

// WithinRoot reports whether path resolves to root itself or to a
// location inside root. Used to reject copying a directory into its
// own descendant, which would otherwise feed the copy its own output.
func WithinRoot(root, path string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, fmt.Errorf("resolving '%s': %w", root, err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolving '%s': %w", path, err)
	}
	absRoot = TrimTrailingSeparators(absRoot)
	absPath = TrimTrailingSeparators(absPath)
	if absPath == absRoot {
		return true, nil
	}
	return strings.HasPrefix(absPath, absRoot+string(filepath.Separator)), nil
}
