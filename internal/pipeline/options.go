package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// maxInferEntries is the largest number of top-level entries the working
// directory may hold for its name to be adopted as the project identifier.
// Anything busier is assumed to be an unrelated directory.
const maxInferEntries = 3

// ValidationError reports a missing or invalid run parameter, with a
// concrete remedy.
type ValidationError struct {
	Param  string
	Reason string
	Remedy string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
	if e.Remedy != "" {
		msg += "\n  " + e.Remedy
	}
	return msg
}

// ConflictError reports existing state that blocks a step, with the concrete
// resolution options enumerated for the user.
type ConflictError struct {
	What    string
	Options []string
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nResolve by one of:\n", e.What)
	for i, opt := range e.Options {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, opt)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Options parameterizes one pipeline run. Team and Project are immutable
// once the run starts.
type Options struct {
	Team    string
	Project string
	Account string // defaults to Team

	Variants []Variant
	Mode     BuildMode
	Version  string // image version tag, semver with leading v

	Dotfiles     string // optional source directory
	LinkDotfiles bool

	AuthorName  string
	AuthorEmail string

	PrepareOnly bool
	SkipConfirm bool

	WorkDir string // invoking directory; defaults to os.Getwd
}

// Validate checks required parameters, infers the project identifier from
// the working directory when safe, and fills defaults. It mutates o in place
// and must succeed before any external side effect.
func (o *Options) Validate() error {
	if o.Team == "" {
		return &ValidationError{
			Param:  "team",
			Reason: "team identifier is required",
			Remedy: "pass --team <name> or run `labforge config set team <name>`",
		}
	}

	if o.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		o.WorkDir = wd
	}

	if o.Project == "" {
		project, err := inferProject(o.WorkDir)
		if err != nil {
			return err
		}
		o.Project = project
	}

	if o.Account == "" {
		o.Account = o.Team
	}

	if len(o.Variants) == 0 {
		o.Variants = []Variant{VariantShell}
	}

	if o.Version == "" {
		o.Version = "v1.0.0"
	}
	if _, err := semver.NewVersion(strings.TrimPrefix(o.Version, "v")); err != nil {
		return &ValidationError{
			Param:  "version",
			Reason: fmt.Sprintf("%q is not a semantic version", o.Version),
			Remedy: "use a tag like v1.0.0",
		}
	}

	if o.Dotfiles != "" {
		info, err := os.Stat(o.Dotfiles)
		if err != nil || !info.IsDir() {
			return &ValidationError{
				Param:  "dotfiles",
				Reason: fmt.Sprintf("%s does not exist or is not a directory", o.Dotfiles),
				Remedy: "point --dotfiles at your dotfiles checkout, or unset it",
			}
		}
	}

	return nil
}

// ProjectRoot returns where the project lives: the working directory itself
// when it is already named after the project, otherwise a subdirectory.
func (o *Options) ProjectRoot() string {
	if filepath.Base(o.WorkDir) == o.Project {
		return o.WorkDir
	}
	return filepath.Join(o.WorkDir, o.Project)
}

// Slug returns the remote repository slug (<account>/<project>).
func (o *Options) Slug() string {
	return o.Account + "/" + o.Project
}

// inferProject adopts the working directory's name as the project identifier,
// but only when the directory is empty-ish — never an unrelated, populated
// directory.
func inferProject(workDir string) (string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return "", fmt.Errorf("reading working directory: %w", err)
	}
	if len(entries) > maxInferEntries {
		return "", &ValidationError{
			Param:  "project",
			Reason: fmt.Sprintf("current directory has %d entries, refusing to adopt it as a project", len(entries)),
			Remedy: "pass --project <name> explicitly",
		}
	}
	return filepath.Base(workDir), nil
}
