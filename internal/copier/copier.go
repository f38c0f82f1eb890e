// Package copier implements the copy pass: mirroring a directory tree
// and streaming file contents, advancing a progress counter once per
// successfully copied regular file.
package copier

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arch-user-sudo/jtcopy/internal/pathutil"
)

// DefaultBufferSize is the chunk size used when streaming file
// contents.
const DefaultBufferSize = 8192

// Engine runs the copy pass. It owns the progress counter pair: Total
// comes from the pre-scan and is read-only during the copy; the copied
// counter advances exactly once per successfully copied regular file,
// never on failure. The engine is single-threaded, so the counters
// need no synchronization.
type Engine struct {
	// Total is the file count produced by the pre-scan.
	Total int
	// BufferSize is the streaming chunk size; zero means
	// DefaultBufferSize.
	BufferSize int
	// Errs receives one line per skipped item, tagged with the
	// offending path and the underlying error. May be nil.
	Errs io.Writer
	// OnCopied fires after each successful file copy with the
	// running and total counts.
	OnCopied func(copied, total int)

	copied int
	bytes  int64

	// overridable for tests
	lstat  func(string) (fs.FileInfo, error)
	open   func(string) (io.ReadCloser, error)
	create func(string) (io.WriteCloser, error)
	mkdir  func(string, fs.FileMode) error
}

// New returns an Engine wired to the real filesystem.
func New(total int, errs io.Writer) *Engine {
	return &Engine{
		Total:      total,
		BufferSize: DefaultBufferSize,
		Errs:       errs,
		lstat:      os.Lstat,
		open:       func(path string) (io.ReadCloser, error) { return os.Open(path) },
		create:     func(path string) (io.WriteCloser, error) { return os.Create(path) },
		mkdir:      func(path string, mode fs.FileMode) error { return os.Mkdir(path, mode) },
	}
}

// Copied returns how many files have been copied so far.
func (e *Engine) Copied() int { return e.copied }

// BytesCopied returns the total bytes written for copied files.
func (e *Engine) BytesCopied() int64 { return e.bytes }

type task struct {
	src, dst string
}

// CopyTree mirrors the directory at srcDir into dstDir: directories
// are recreated, regular files are streamed, everything else is
// skipped. A failure on an individual child is reported and skipped
// while its siblings continue; only a failure on srcDir or dstDir
// themselves fails the call. Traversal uses an explicit work-list of
// pending directories rather than call-stack recursion.
func (e *Engine) CopyTree(srcDir, dstDir string) error {
	pending := []task{{src: srcDir, dst: dstDir}}
	root := true

	for len(pending) > 0 {
		t := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		isRoot := root
		root = false

		if err := e.mkdir(t.dst, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
			e.fail(OpMkdir, t.dst, err)
			if isRoot {
				return err
			}
			continue
		}
		entries, err := os.ReadDir(t.src)
		if err != nil {
			e.fail(OpListDir, t.src, err)
			if isRoot {
				return err
			}
			continue
		}

		for _, ent := range entries {
			childSrc := filepath.Join(t.src, ent.Name())
			childDst := filepath.Join(t.dst, ent.Name())
			if !pathutil.Fits(childSrc) || !pathutil.Fits(childDst) {
				e.fail(OpCompose, childSrc, nil)
				continue
			}
			info, err := e.lstat(childSrc)
			if err != nil {
				e.fail(OpStat, childSrc, err)
				continue
			}
			switch {
			case info.IsDir():
				pending = append(pending, task{src: childSrc, dst: childDst})
			case info.Mode().IsRegular():
				// Failure is already reported; siblings continue.
				_ = e.CopyFile(childSrc, childDst)
			default:
				e.fail(OpSpecialEntry, childSrc, nil)
			}
		}
	}
	return nil
}

// CopyFile streams the contents of src into dst in fixed-size chunks,
// truncating any existing destination content. Both handles are
// released on every exit path. On success the copied counter advances
// and OnCopied fires; a failed copy never advances it.
func (e *Engine) CopyFile(src, dst string) error {
	in, err := e.open(src)
	if err != nil {
		e.fail(OpOpenSource, src, err)
		return err
	}
	out, err := e.create(dst)
	if err != nil {
		in.Close()
		e.fail(OpCreateDest, dst, err)
		return err
	}

	bufSize := e.BufferSize
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	buf := make([]byte, bufSize)
	var written int64
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			wn, werr := out.Write(buf[:n])
			if werr == nil && wn != n {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				in.Close()
				out.Close()
				e.fail(OpWrite, dst, werr)
				return werr
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			in.Close()
			out.Close()
			e.fail(OpRead, src, rerr)
			return rerr
		}
	}
	in.Close()
	if err := out.Close(); err != nil {
		e.fail(OpWrite, dst, err)
		return err
	}

	e.bytes += written
	e.copied++
	if e.OnCopied != nil {
		e.OnCopied(e.copied, e.Total)
	}
	return nil
}

// fail handles a failed operation on path according to the decision
// table in policy.go.
func (e *Engine) fail(op Op, path string, err error) {
	if actionFor(op) == Ignore || e.Errs == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(e.Errs, "%s '%s': %v\n", op, path, err)
	} else {
		fmt.Fprintf(e.Errs, "%s '%s'\n", op, path)
	}
}
