package remote

import (
	"context"
	"fmt"
	"io"

	"github.com/labforge-labs/labforge/internal/runner"
)

// GitHub drives the gh CLI. The user must be pre-authenticated.
type GitHub struct {
	run runner.Runner
}

// New returns a GitHub driver over the given Runner.
func New(run runner.Runner) *GitHub {
	return &GitHub{run: run}
}

// Installed reports whether the gh CLI is on PATH.
func (g *GitHub) Installed() bool {
	return g.run.LookPath("gh") == nil
}

// Authenticated reports whether gh has valid credentials.
func (g *GitHub) Authenticated(ctx context.Context) bool {
	_, err := g.run.Output(ctx, "", "gh", "auth", "status")
	return err == nil
}

// RepoExists reports whether owner/name already exists on the host.
func (g *GitHub) RepoExists(ctx context.Context, slug string) bool {
	_, err := g.run.Output(ctx, "", "gh", "repo", "view", slug, "--json", "name")
	return err == nil
}

// AccountExists is a best-effort probe for a user or organization account.
func (g *GitHub) AccountExists(ctx context.Context, account string) bool {
	_, err := g.run.Output(ctx, "", "gh", "api", "users/"+account)
	return err == nil
}

// CreateRepo creates a private repository with a description.
func (g *GitHub) CreateRepo(ctx context.Context, stdout, stderr io.Writer, slug, description string) error {
	args := []string{"repo", "create", slug, "--private", "--description", description}
	if err := g.run.Run(ctx, "", stdout, stderr, "gh", args...); err != nil {
		return fmt.Errorf("creating repository %s: %w", slug, err)
	}
	return nil
}

// RepoURL returns the git URL for a slug.
func RepoURL(slug string) string {
	return fmt.Sprintf("https://github.com/%s.git", slug)
}
