package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/labforge-labs/labforge/internal/dotfiles"
	"github.com/labforge-labs/labforge/internal/engine"
	"github.com/labforge-labs/labforge/internal/gitops"
	"github.com/labforge-labs/labforge/internal/remote"
	"github.com/labforge-labs/labforge/internal/runner"
	"github.com/labforge-labs/labforge/internal/template"
	"github.com/labforge-labs/labforge/internal/tracker"
)

// scaffoldDirs are the standard project subdirectories created at setup.
var scaffoldDirs = []string{"analysis", "data", "scripts"}

// ConfirmFunc presents the run summary and returns the user's decision.
type ConfirmFunc func(w io.Writer, summary string) (bool, error)

// Pipeline executes the team-initialization workflow. Steps run in order;
// the first failure aborts the remainder with no automatic rollback — the
// manifest ledger is what a later uninstall consumes.
type Pipeline struct {
	run     runner.Runner
	out     io.Writer
	opts    Options
	confirm ConfirmFunc

	docker *engine.Docker
	host   *remote.GitHub
}

// New assembles a Pipeline. confirm may be nil only when opts.SkipConfirm
// is set.
func New(run runner.Runner, out io.Writer, opts Options, confirm ConfirmFunc) *Pipeline {
	return &Pipeline{
		run:     run,
		out:     out,
		opts:    opts,
		confirm: confirm,
		docker:  engine.New(run),
		host:    remote.New(run),
	}
}

// Execute runs the full workflow. A declined confirmation is a successful
// no-op for all external steps.
func (p *Pipeline) Execute(ctx context.Context) error {
	// Step 1: external prerequisites, before anything else.
	if err := p.checkPrerequisites(ctx); err != nil {
		return err
	}

	// Step 2: parameters. Team/project are fixed from here on.
	if err := p.opts.Validate(); err != nil {
		return err
	}

	// Step 3: project structure.
	root, tr, err := p.createStructure()
	if err != nil {
		return err
	}

	eng := template.New(tr, p.templateValues())

	// Step 4: stage the build definition.
	fmt.Fprintln(p.out, "Staging build definition:")
	if err := eng.Install(p.out, "Dockerfile", filepath.Join(root, "Dockerfile"), "build definition"); err != nil {
		return err
	}
	if p.opts.PrepareOnly {
		fmt.Fprintf(p.out, "\nPrepared %s.\n", root)
		fmt.Fprintln(p.out, "Edit the Dockerfile to taste, then re-run without --prepare-only to build and publish.")
		return nil
	}

	// Step 5: minimal project files; existing files are never overwritten.
	fmt.Fprintln(p.out, "Materializing project files:")
	files := []struct{ template, dest, desc string }{
		{"DESCRIPTION", "DESCRIPTION", "package descriptor"},
		{"Rprofile", ".Rprofile", "shell profile stub"},
		{"gitignore", ".gitignore", "ignore rules"},
		{"Makefile", "Makefile", "build shortcuts"},
	}
	for _, f := range files {
		if err := eng.Install(p.out, f.template, filepath.Join(root, f.dest), f.desc); err != nil {
			return err
		}
	}
	if p.opts.Dotfiles != "" {
		fmt.Fprintln(p.out, "Staging dotfiles:")
		if err := dotfiles.Stage(p.out, tr, p.opts.Dotfiles, root, p.opts.LinkDotfiles); err != nil {
			return err
		}
	}

	// Single confirmation gate: everything past this point is externally
	// visible (image builds, registry pushes, commits, remote creation).
	ok, err := p.confirmRun()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(p.out, "Cancelled. Nothing was built or published.")
		return nil
	}

	// Steps 6-7: build then publish every selected variant, in order.
	built, err := p.buildVariants(ctx, root, tr)
	if err != nil {
		return err
	}
	if err := p.pushVariants(ctx, built); err != nil {
		return err
	}

	// Step 9: local version control.
	if err := p.initVersionControl(ctx, root); err != nil {
		return err
	}

	// Step 10: remote repository.
	if err := p.publishRemote(ctx, root, tr); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\nDone. Workspace %s is ready; manifest at %s.\n", root, tr.Path())
	return nil
}

// checkPrerequisites fails fatally only on a missing/unreachable container
// engine or a missing/unauthenticated host CLI; registry login and account
// reachability are best-effort warnings.
func (p *Pipeline) checkPrerequisites(ctx context.Context) error {
	fmt.Fprintln(p.out, "Checking prerequisites:")

	if !p.docker.Installed() {
		return &ValidationError{
			Param:  "docker",
			Reason: "the docker CLI is not installed",
			Remedy: "install Docker from https://docs.docker.com/get-docker/ and re-run",
		}
	}
	if !p.docker.DaemonReachable(ctx) {
		return &ValidationError{
			Param:  "docker",
			Reason: "the docker daemon is not reachable",
			Remedy: "start Docker Desktop (or `systemctl start docker`) and re-run",
		}
	}
	fmt.Fprintln(p.out, "  [ OK ] docker daemon reachable")

	if !p.host.Installed() {
		return &ValidationError{
			Param:  "gh",
			Reason: "the gh CLI is not installed",
			Remedy: "install it from https://cli.github.com/ and run `gh auth login`",
		}
	}
	if !p.host.Authenticated(ctx) {
		return &ValidationError{
			Param:  "gh",
			Reason: "the gh CLI is not authenticated",
			Remedy: "run `gh auth login` and re-run",
		}
	}
	fmt.Fprintln(p.out, "  [ OK ] gh authenticated")

	if !p.docker.LoggedIn(ctx) {
		fmt.Fprintln(p.out, "  [WARN] no registry login detected; `docker login` before pushes fail")
	}
	if p.opts.Team != "" && !p.host.AccountExists(ctx, p.opts.Team) {
		fmt.Fprintf(p.out, "  [WARN] team account %q not reachable on the host\n", p.opts.Team)
	}
	if p.opts.Account != "" && p.opts.Account != p.opts.Team && !p.host.AccountExists(ctx, p.opts.Account) {
		fmt.Fprintf(p.out, "  [WARN] account %q not reachable on the host\n", p.opts.Account)
	}

	return nil
}

// createStructure decides the project root, refuses to repurpose a blocking
// directory, and creates the scaffold directories through the tracker.
func (p *Pipeline) createStructure() (string, *tracker.Tracker, error) {
	root := p.opts.ProjectRoot()

	if root != p.opts.WorkDir {
		if entries, err := os.ReadDir(root); err == nil && len(entries) > 0 {
			return "", nil, &ConflictError{
				What: fmt.Sprintf("directory %s exists and is not empty", root),
				Options: []string{
					"remove or rename the existing directory",
					fmt.Sprintf("pick a different project name with --project (current: %s)", p.opts.Project),
					"run from inside the directory if it is this project",
				},
			}
		}
	}

	tr := tracker.New(root)

	fmt.Fprintln(p.out, "Creating project structure:")
	if err := tr.EnsureDir(p.out, root, 0755); err != nil {
		return "", nil, err
	}
	for _, d := range scaffoldDirs {
		if err := tr.EnsureDir(p.out, filepath.Join(root, d), 0755); err != nil {
			return "", nil, err
		}
	}
	return root, tr, nil
}

// templateValues assembles the placeholder configuration for this run.
func (p *Pipeline) templateValues() template.Values {
	return template.Values{
		PkgName:      p.opts.Project,
		Team:         p.opts.Team,
		BaseImage:    p.opts.Variants[0].BaseImage(),
		ImageVersion: p.opts.Version,
		AuthorName:   p.opts.AuthorName,
		AuthorEmail:  p.opts.AuthorEmail,
		InstallExtra: p.opts.Mode.InstallCommand(),
	}
}

// confirmRun shows the full configuration and asks once, unless the caller
// pre-authorized with --yes.
func (p *Pipeline) confirmRun() (bool, error) {
	if p.opts.SkipConfirm {
		return true, nil
	}
	if p.confirm == nil {
		return false, fmt.Errorf("confirmation required but no prompt available (pass --yes to pre-authorize)")
	}
	return p.confirm(p.out, p.Summary())
}

// Summary renders the run configuration shown at the confirmation gate.
func (p *Pipeline) Summary() string {
	variants := ""
	for i, v := range p.opts.Variants {
		if i > 0 {
			variants += ", "
		}
		variants += v.Name()
	}
	return fmt.Sprintf(
		"Team:       %s\nProject:    %s\nAccount:    %s\nVariants:   %s\nBuild mode: %s\nVersion:    %s\nRemote:     %s",
		p.opts.Team, p.opts.Project, p.opts.Account, variants,
		p.opts.Mode.Name(), p.opts.Version, p.opts.Slug())
}

// builtVariant pairs a variant with its two tags.
type builtVariant struct {
	variant      Variant
	versionedTag string
	latestTag    string
}

// buildVariants builds each selected variant in order, tracking both tags.
// A build failure is fatal and leaves already-built variants for uninstall.
func (p *Pipeline) buildVariants(ctx context.Context, root string, tr *tracker.Tracker) ([]builtVariant, error) {
	var built []builtVariant
	for _, v := range p.opts.Variants {
		repo := v.Repository(p.opts.Team, p.opts.Project)
		b := builtVariant{
			variant:      v,
			versionedTag: repo + ":" + p.opts.Version,
			latestTag:    repo + ":latest",
		}

		fmt.Fprintf(p.out, "Building %s (%s):\n", b.versionedTag, v.Description())
		err := p.docker.Build(ctx, p.out, p.out, engine.BuildOptions{
			Dir:          root,
			BaseImage:    v.BaseImage(),
			Team:         p.opts.Team,
			Project:      p.opts.Project,
			BuildMode:    p.opts.Mode.Name(),
			VersionedTag: b.versionedTag,
			LatestTag:    b.latestTag,
		})
		if err != nil {
			return nil, err
		}

		warnOnTrackFailure(p.out, tr.TrackImage(b.versionedTag))
		warnOnTrackFailure(p.out, tr.TrackImage(b.latestTag))
		built = append(built, b)
	}
	return built, nil
}

// pushVariants publishes both tags per variant, in build order. A push
// failure is fatal; already-pushed variants stay published.
func (p *Pipeline) pushVariants(ctx context.Context, built []builtVariant) error {
	for _, b := range built {
		fmt.Fprintf(p.out, "Publishing %s:\n", b.versionedTag)
		if err := p.docker.Push(ctx, p.out, p.out, b.versionedTag); err != nil {
			return err
		}
		if err := p.docker.Push(ctx, p.out, p.out, b.latestTag); err != nil {
			return err
		}
	}
	return nil
}

// initVersionControl initializes a repository if none exists, stages
// everything, and commits only when something is staged — a re-run with no
// changes commits nothing.
func (p *Pipeline) initVersionControl(ctx context.Context, root string) error {
	g := gitops.New(p.run, root)

	fmt.Fprintln(p.out, "Initializing version control:")
	if !g.IsRepo() {
		if err := g.Init(ctx, p.out, p.out); err != nil {
			return err
		}
	}
	if err := g.StageAll(ctx, p.out, p.out); err != nil {
		return err
	}
	if !g.HasStagedChanges(ctx) {
		fmt.Fprintln(p.out, "  [SKIP] nothing staged, no commit created")
		return nil
	}
	return g.Commit(ctx, p.out, p.out, "Initial workspace scaffold")
}

// publishRemote creates the private remote repository and pushes. An
// existing repository of the same name is a fatal conflict — nothing is
// pushed and the concrete resolutions are enumerated.
func (p *Pipeline) publishRemote(ctx context.Context, root string, tr *tracker.Tracker) error {
	slug := p.opts.Slug()
	g := gitops.New(p.run, root)

	fmt.Fprintf(p.out, "Creating remote repository %s:\n", slug)
	if p.host.RepoExists(ctx, slug) {
		return &ConflictError{
			What: fmt.Sprintf("remote repository %s already exists", slug),
			Options: []string{
				fmt.Sprintf("delete it: gh repo delete %s", slug),
				"rename the project with --project and re-run",
				fmt.Sprintf("push manually: git remote add origin %s && git push -u origin %s",
					remote.RepoURL(slug), gitops.DefaultBranch),
			},
		}
	}

	desc := fmt.Sprintf("Reproducible research workspace for %s (team %s)", p.opts.Project, p.opts.Team)
	if err := p.host.CreateRepo(ctx, p.out, p.out, slug, desc); err != nil {
		return err
	}
	warnOnTrackFailure(p.out, tr.TrackRepo(slug))

	if err := g.AddRemote(ctx, p.out, p.out, "origin", remote.RepoURL(slug)); err != nil {
		return err
	}
	if err := g.RenameBranch(ctx, p.out, p.out, gitops.DefaultBranch); err != nil {
		return err
	}
	return g.Push(ctx, p.out, p.out, "origin", gitops.DefaultBranch)
}

// warnOnTrackFailure logs a tracking warning without failing the step.
func warnOnTrackFailure(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %v\n", err)
	}
}
