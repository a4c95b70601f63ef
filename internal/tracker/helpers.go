package tracker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/labforge-labs/labforge/internal/platform"
)

// EnsureDir creates a directory if it doesn't exist and tracks the creation.
// An already-existing directory is skipped and not tracked (it was not
// created by us). Progress lines go to w.
func (t *Tracker) EnsureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)

	warnOnTrackFailure(w, t.TrackDir(path))
	return nil
}

// CopyFile copies src to dst and tracks the creation. An already-existing
// destination is skipped and not tracked.
func (t *Tracker) CopyFile(w io.Writer, src, dst string, perm os.FileMode) error {
	if _, err := os.Stat(dst); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", dst)
		return nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", dst)

	warnOnTrackFailure(w, t.TrackFile(dst))
	return nil
}

// WriteFile creates dst with the given content and tracks the creation. An
// already-existing destination is skipped and not tracked.
func (t *Tracker) WriteFile(w io.Writer, dst string, content []byte, perm os.FileMode) error {
	if _, err := os.Stat(dst); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", dst)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, content, perm); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", dst)

	warnOnTrackFailure(w, t.TrackFile(dst))
	return nil
}

// CreateSymlink creates a symlink and tracks the creation. An existing link
// path is skipped and not tracked.
func (t *Tracker) CreateSymlink(w io.Writer, target, link string) error {
	if _, err := os.Lstat(link); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", link)
		return nil
	}

	if err := platform.CreateSymlink(target, link); err != nil {
		return fmt.Errorf("creating symlink %s -> %s: %w", link, target, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s -> %s\n", link, target)

	warnOnTrackFailure(w, t.TrackSymlink(link, target))
	return nil
}

// warnOnTrackFailure prints a tracking warning without failing the creation:
// the side effect already happened, losing trackability is the lesser harm.
func warnOnTrackFailure(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %v\n", err)
	}
}
