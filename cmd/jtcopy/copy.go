package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arch-user-sudo/jtcopy/internal/copier"
	"github.com/arch-user-sudo/jtcopy/internal/pathutil"
	"github.com/arch-user-sudo/jtcopy/internal/scan"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func runCopy(cmd *cobra.Command, args []string) error {
	// Argument validation has passed; runtime errors should not
	// trigger a usage dump.
	cmd.SilenceUsage = true

	src, dst := args[0], args[1]

	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat '%s': %w", src, err)
	}

	bufSize, _ := cmd.Flags().GetInt("buffer-size")
	barWidth, _ := cmd.Flags().GetInt("bar-width")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	interactive, _ := cmd.Flags().GetBool("interactive")
	stats, _ := cmd.Flags().GetBool("stats")

	// First pass: count what there is to copy.
	scanned := scan.Count(src)
	if scanned.Files == 0 {
		fmt.Println("No files to copy.")
		return nil
	}

	var rend *renderer
	if !noProgress {
		tty := term.IsTerminal(int(os.Stdout.Fd()))
		if tty {
			barWidth = clampBarWidth(barWidth, scanned.Files)
		}
		rend = newRenderer(os.Stdout, tty, barWidth)
	}

	eng := copier.New(scanned.Files, os.Stderr)
	eng.BufferSize = bufSize
	if rend != nil {
		eng.OnCopied = rend.Update
	}

	switch {
	case info.IsDir():
		inside, err := pathutil.WithinRoot(src, dst)
		if err != nil {
			return err
		}
		if inside {
			return fmt.Errorf("destination '%s' is inside source '%s'", dst, src)
		}
		target := filepath.Join(dst, pathutil.Basename(src))
		if !pathutil.Fits(target) {
			return fmt.Errorf("destination path too long: '%s'", target)
		}
		if err := os.Mkdir(target, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("mkdir '%s': %w", target, err)
		}
		// Per-item failures are reported by the engine and do not
		// abort the run.
		_ = eng.CopyTree(src, target)

	case info.Mode().IsRegular():
		target := dst
		if di, err := os.Stat(dst); err == nil && di.IsDir() {
			target = filepath.Join(dst, filepath.Base(src))
		}
		if !pathutil.Fits(target) {
			return fmt.Errorf("destination path too long: '%s'", target)
		}
		if interactive {
			if _, err := os.Lstat(target); err == nil {
				ok, err := confirmOverwrite(target)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}
		}
		_ = eng.CopyFile(src, target)

	default:
		return fmt.Errorf("unsupported source type: '%s'", src)
	}

	if rend != nil {
		rend.Done()
	}
	fmt.Println("Done.")
	if stats {
		fmt.Printf("Copied %d of %d files (%s)\n",
			eng.Copied(), scanned.Files, humanize.Bytes(uint64(eng.BytesCopied())))
	}
	return nil
}

// clampBarWidth shrinks the bar so the whole progress line fits the
// terminal, leaving the flag value alone on wide terminals.
func clampBarWidth(width, total int) int {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return width
	}
	overhead := len(fmt.Sprintf("[] %6.2f%% (%d/%d files)", 100.0, total, total))
	if max := cols - overhead; max > 0 && width > max {
		return max
	}
	return width
}

func confirmOverwrite(path string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Overwrite %s?", path)).
		Affirmative("Overwrite").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("overwrite prompt: %w", err)
	}
	return ok, nil
}

func init() {
	rootCmd.Flags().Int("buffer-size", copier.DefaultBufferSize, "Chunk size in bytes for file streaming")
	rootCmd.Flags().Int("bar-width", defaultBarWidth, "Width of the progress bar in cells")
	rootCmd.Flags().Bool("no-progress", false, "Disable the progress display")
	rootCmd.Flags().Bool("interactive", false, "Prompt before overwriting an existing destination file")
	rootCmd.Flags().Bool("stats", false, "Print a byte-count summary after the copy")
}
