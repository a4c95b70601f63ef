package dotfiles

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labforge-labs/labforge/internal/tracker"
)

// skippedNames are never staged from a dotfiles source.
var skippedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

// Stage copies the top-level dotfiles (names starting with ".") from
// sourceDir into projectRoot, tracking each staged file. When link is true,
// symlinks are created instead of copies so edits in the source take effect
// immediately. Existing destinations are skipped.
func Stage(w io.Writer, tr *tracker.Tracker, sourceDir, projectRoot string, link bool) error {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return fmt.Errorf("dotfiles source %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("dotfiles source %s is not a directory", sourceDir)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return fmt.Errorf("reading dotfiles source %s: %w", sourceDir, err)
	}

	staged := 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, ".") || skippedNames[name] || entry.IsDir() {
			continue
		}

		src := filepath.Join(sourceDir, name)
		dst := filepath.Join(projectRoot, name)

		if link {
			err = tr.CreateSymlink(w, src, dst)
		} else {
			err = tr.CopyFile(w, src, dst, 0644)
		}
		if err != nil {
			return fmt.Errorf("staging dotfile %s: %w", name, err)
		}
		staged++
	}

	if staged == 0 {
		fmt.Fprintf(w, "  [SKIP] no dotfiles found in %s\n", sourceDir)
	}
	return nil
}
