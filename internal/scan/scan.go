// Package scan implements the pre-scan pass of a copy: a single walk
// over the source tree that tallies the regular files a copy pass will
// visit, so progress can be reported against a known total.
package scan

import (
	"os"
	"path/filepath"

	"github.com/arch-user-sudo/jtcopy/internal/pathutil"
)

// Result holds what a scan of a source tree produced. Files is the
// count of regular files reachable from the root; Bytes is the sum of
// their sizes. Both are computed once and read-only afterwards.
type Result struct {
	Files int
	Bytes int64
}

// Count walks the tree rooted at root and tallies regular files.
// Symlinks, devices, sockets and FIFOs are neither counted nor
// followed. Every failure during the walk is silently ignored: a path
// that cannot be statted or a directory that cannot be listed simply
// contributes nothing. Traversal uses an explicit work-list, so depth
// is not bounded by the call stack.
func Count(root string) Result {
	var res Result

	info, err := os.Lstat(root)
	if err != nil {
		return res
	}
	if info.Mode().IsRegular() {
		res.Files = 1
		res.Bytes = info.Size()
		return res
	}
	if !info.IsDir() {
		return res
	}

	pending := []string{root}
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, ent := range entries {
			path := filepath.Join(dir, ent.Name())
			if !pathutil.Fits(path) {
				continue
			}
			info, err := ent.Info()
			if err != nil {
				continue
			}
			switch {
			case info.Mode().IsRegular():
				res.Files++
				res.Bytes += info.Size()
			case info.IsDir():
				pending = append(pending, path)
			}
		}
	}
	return res
}
