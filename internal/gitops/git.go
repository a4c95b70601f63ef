package gitops

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/labforge-labs/labforge/internal/runner"
)

// DefaultBranch is the canonical primary branch name.
const DefaultBranch = "main"

// Git drives the git CLI against one working tree.
type Git struct {
	run runner.Runner
	dir string
}

// New returns a Git driver for the working tree at dir.
func New(run runner.Runner, dir string) *Git {
	return &Git{run: run, dir: dir}
}

// IsRepo reports whether the working tree already has a .git directory.
func (g *Git) IsRepo() bool {
	info, err := os.Stat(filepath.Join(g.dir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a repository in the working tree.
func (g *Git) Init(ctx context.Context, stdout, stderr io.Writer) error {
	if err := g.run.Run(ctx, g.dir, stdout, stderr, "git", "init"); err != nil {
		return fmt.Errorf("initializing repository: %w", err)
	}
	return nil
}

// StageAll stages every path in the working tree.
func (g *Git) StageAll(ctx context.Context, stdout, stderr io.Writer) error {
	if err := g.run.Run(ctx, g.dir, stdout, stderr, "git", "add", "-A"); err != nil {
		return fmt.Errorf("staging files: %w", err)
	}
	return nil
}

// HasStagedChanges reports whether anything is staged. `git diff --cached
// --quiet` exits non-zero exactly when staged changes exist.
func (g *Git) HasStagedChanges(ctx context.Context) bool {
	_, err := g.run.Output(ctx, g.dir, "git", "diff", "--cached", "--quiet")
	return err != nil
}

// Commit creates one commit with the given message.
func (g *Git) Commit(ctx context.Context, stdout, stderr io.Writer, message string) error {
	if err := g.run.Run(ctx, g.dir, stdout, stderr, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// RenameBranch renames the current branch to the canonical primary name.
func (g *Git) RenameBranch(ctx context.Context, stdout, stderr io.Writer, name string) error {
	if err := g.run.Run(ctx, g.dir, stdout, stderr, "git", "branch", "-M", name); err != nil {
		return fmt.Errorf("renaming branch to %s: %w", name, err)
	}
	return nil
}

// AddRemote attaches a named remote.
func (g *Git) AddRemote(ctx context.Context, stdout, stderr io.Writer, name, url string) error {
	if err := g.run.Run(ctx, g.dir, stdout, stderr, "git", "remote", "add", name, url); err != nil {
		return fmt.Errorf("adding remote %s: %w", name, err)
	}
	return nil
}

// Push pushes the branch with upstream tracking.
func (g *Git) Push(ctx context.Context, stdout, stderr io.Writer, remote, branch string) error {
	if err := g.run.Run(ctx, g.dir, stdout, stderr, "git", "push", "-u", remote, branch); err != nil {
		return fmt.Errorf("pushing %s to %s: %w", branch, remote, err)
	}
	return nil
}
