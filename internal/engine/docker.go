package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/labforge-labs/labforge/internal/runner"
)

// Docker drives the docker CLI.
type Docker struct {
	run runner.Runner
}

// New returns a Docker driver over the given Runner.
func New(run runner.Runner) *Docker {
	return &Docker{run: run}
}

// Installed reports whether the docker CLI is on PATH.
func (d *Docker) Installed() bool {
	return d.run.LookPath("docker") == nil
}

// DaemonReachable reports whether the docker daemon answers.
func (d *Docker) DaemonReachable(ctx context.Context) bool {
	_, err := d.run.Output(ctx, "", "docker", "info", "--format", "{{.ServerVersion}}")
	return err == nil
}

// LoggedIn is a best-effort check that the user has registry credentials.
// It inspects `docker info` output for a username; absence is a warning
// condition, not a failure.
func (d *Docker) LoggedIn(ctx context.Context) bool {
	out, err := d.run.Output(ctx, "", "docker", "info", "--format", "{{.Username}}")
	return err == nil && out != "" && out != "<no value>"
}

// BuildOptions describes one image build.
type BuildOptions struct {
	Dir          string // build context directory
	BaseImage    string
	Team         string
	Project      string
	BuildMode    string
	VersionedTag string
	LatestTag    string
}

// Build runs `docker build` with the named build arguments, applying both
// tags in one invocation.
func (d *Docker) Build(ctx context.Context, stdout, stderr io.Writer, opts BuildOptions) error {
	args := []string{
		"build",
		"--build-arg", "BASE_IMAGE=" + opts.BaseImage,
		"--build-arg", "TEAM=" + opts.Team,
		"--build-arg", "PROJECT=" + opts.Project,
		"--build-arg", "BUILD_MODE=" + opts.BuildMode,
		"-t", opts.VersionedTag,
		"-t", opts.LatestTag,
		".",
	}
	if err := d.run.Run(ctx, opts.Dir, stdout, stderr, "docker", args...); err != nil {
		return fmt.Errorf("building %s: %w", opts.VersionedTag, err)
	}
	return nil
}

// Push pushes one tag to the registry.
func (d *Docker) Push(ctx context.Context, stdout, stderr io.Writer, tag string) error {
	if err := d.run.Run(ctx, "", stdout, stderr, "docker", "push", tag); err != nil {
		return fmt.Errorf("pushing %s: %w", tag, err)
	}
	return nil
}

// RemoveImage deletes a local image tag. The tag may already be gone.
func (d *Docker) RemoveImage(ctx context.Context, stdout, stderr io.Writer, tag string) error {
	if err := d.run.Run(ctx, "", stdout, stderr, "docker", "rmi", tag); err != nil {
		return fmt.Errorf("removing image %s: %w", tag, err)
	}
	return nil
}

// LocalRepositories lists local image repository names (no tags), used to
// detect team/project identifiers from previously built variants.
func (d *Docker) LocalRepositories(ctx context.Context) ([]string, error) {
	out, err := d.run.Output(ctx, "", "docker", "images", "--format", "{{.Repository}}")
	if err != nil {
		return nil, fmt.Errorf("listing local images: %w", err)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
