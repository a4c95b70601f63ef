package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/labforge-labs/labforge/internal/engine"
	"github.com/labforge-labs/labforge/internal/platform"
	"github.com/labforge-labs/labforge/internal/runner"
	"github.com/labforge-labs/labforge/internal/tracker"
)

// TeardownOptions parameterizes a manifest-driven uninstall.
type TeardownOptions struct {
	Root         string // project root holding the manifest
	DeleteRemote bool   // delete the remote repository instead of printing instructions
	KeepImages   bool   // leave local images in place
	DryRun       bool   // report the plan without removing anything
}

// Teardown undoes a recorded setup: it walks the manifest in reverse creation
// order and removes each artifact. Files created outside the manifest are
// never touched, so directories that still hold user work survive. Removal
// failures are warnings; teardown keeps going and reports what remains.
func Teardown(ctx context.Context, run runner.Runner, w io.Writer, opts TeardownOptions) error {
	tr := tracker.New(opts.Root)
	entries, err := tr.Load()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(w, "No manifest at %s; nothing to undo.\n", tr.Path())
		return nil
	}

	docker := engine.New(run)
	removed, kept := 0, 0

	for _, e := range tracker.Reversed(entries) {
		if opts.DryRun {
			fmt.Fprintf(w, "  [PLAN] remove %s %s\n", e.Kind, e.Path)
			continue
		}

		switch e.Kind {
		case tracker.KindFile, tracker.KindTemplate:
			removed, kept = tally(w, removeFile(e.Path), e, removed, kept)

		case tracker.KindSymlink:
			removed, kept = tally(w, removeSymlink(e.Path, e.Target), e, removed, kept)

		case tracker.KindDir:
			removed, kept = tally(w, removeEmptyDir(e.Path), e, removed, kept)

		case tracker.KindImage:
			if opts.KeepImages {
				fmt.Fprintf(w, "  [SKIP] image %s kept\n", e.Path)
				kept++
				continue
			}
			if err := docker.RemoveImage(ctx, w, w, e.Path); err != nil {
				fmt.Fprintf(w, "  [WARN] image %s: %v\n", e.Path, err)
				kept++
				continue
			}
			fmt.Fprintf(w, "  [ OK ] removed image %s\n", e.Path)
			removed++

		case tracker.KindRepo:
			if !opts.DeleteRemote {
				fmt.Fprintf(w, "  [SKIP] remote repository %s kept; delete it with: gh repo delete %s\n",
					e.Path, e.Path)
				kept++
				continue
			}
			if err := run.Run(ctx, "", w, w, "gh", "repo", "delete", e.Path, "--yes"); err != nil {
				fmt.Fprintf(w, "  [WARN] repository %s: %v\n", e.Path, err)
				kept++
				continue
			}
			fmt.Fprintf(w, "  [ OK ] deleted repository %s\n", e.Path)
			removed++
		}
	}

	if opts.DryRun {
		fmt.Fprintf(w, "Dry run: %d entries would be processed.\n", len(entries))
		return nil
	}

	// The manifest and its directory go last; the root itself only if empty.
	os.Remove(tr.Path())
	os.Remove(filepath.Dir(tr.Path()))
	os.Remove(opts.Root)

	fmt.Fprintf(w, "Removed %d artifacts, kept %d.\n", removed, kept)
	return nil
}

// teardownResult classifies one removal attempt.
type teardownResult int

const (
	resultRemoved teardownResult = iota
	resultGone
	resultKept
)

func tally(w io.Writer, res teardownResult, e tracker.Entry, removed, kept int) (int, int) {
	switch res {
	case resultRemoved:
		fmt.Fprintf(w, "  [ OK ] removed %s %s\n", e.Kind, e.Path)
		return removed + 1, kept
	case resultGone:
		fmt.Fprintf(w, "  [SKIP] %s %s already gone\n", e.Kind, e.Path)
		return removed, kept
	default:
		fmt.Fprintf(w, "  [SKIP] %s %s kept\n", e.Kind, e.Path)
		return removed, kept + 1
	}
}

func removeFile(path string) teardownResult {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return resultGone
	}
	if err != nil {
		return resultKept
	}
	return resultRemoved
}

// removeSymlink removes path only while it is still a symlink pointing at the
// recorded target. A regular file that replaced the link, or a retargeted
// link, holds user state and stays.
func removeSymlink(path, target string) teardownResult {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return resultGone
	}
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return resultKept
	}
	if current, err := platform.ReadSymlinkTarget(path); err != nil || current != target {
		return resultKept
	}
	if platform.RemoveSymlink(path) != nil {
		return resultKept
	}
	return resultRemoved
}

// removeEmptyDir removes a directory only when it is empty. Anything the user
// put inside keeps the directory alive.
func removeEmptyDir(path string) teardownResult {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return resultGone
	}
	if err != nil || len(entries) > 0 {
		return resultKept
	}
	if os.Remove(path) != nil {
		return resultKept
	}
	return resultRemoved
}
