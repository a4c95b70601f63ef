package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/labforge-labs/labforge/internal/engine"
	"github.com/labforge-labs/labforge/internal/tracker"
)

// DetectIdentity recovers the (team, project) pair for the additional-variant
// entry point: first from locally built variant images, then from the working
// directory's name. Either result may be empty when nothing matched.
func DetectIdentity(ctx context.Context, docker *engine.Docker, workDir string) (team, project string) {
	repos, err := docker.LocalRepositories(ctx)
	if err == nil {
		for _, repo := range repos {
			if t, pr, ok := splitRepository(repo); ok {
				return t, pr
			}
		}
	}
	return "", filepath.Base(workDir)
}

// splitRepository parses <team>/<project>core-<suffix> image names produced
// by this tool.
func splitRepository(repo string) (team, project string, ok bool) {
	slash := strings.IndexByte(repo, '/')
	if slash < 1 {
		return "", "", false
	}
	team = repo[:slash]
	rest := repo[slash+1:]

	for _, v := range AllVariants {
		marker := "core-" + v.Suffix()
		if strings.HasSuffix(rest, marker) && len(rest) > len(marker) {
			return team, strings.TrimSuffix(rest, marker), true
		}
	}
	return "", "", false
}

// BuildOne builds exactly one additional variant against the existing build
// definition in root. It returns the variant's two tags for an optional
// follow-up publish.
func (p *Pipeline) BuildOne(ctx context.Context, root string, v Variant) (versionedTag, latestTag string, err error) {
	if !p.docker.Installed() {
		return "", "", &ValidationError{
			Param:  "docker",
			Reason: "the docker CLI is not installed",
			Remedy: "install Docker from https://docs.docker.com/get-docker/ and re-run",
		}
	}
	if !p.docker.DaemonReachable(ctx) {
		return "", "", &ValidationError{
			Param:  "docker",
			Reason: "the docker daemon is not reachable",
			Remedy: "start Docker Desktop (or `systemctl start docker`) and re-run",
		}
	}

	repo := v.Repository(p.opts.Team, p.opts.Project)
	versionedTag = repo + ":" + p.opts.Version
	latestTag = repo + ":latest"

	fmt.Fprintf(p.out, "Building %s (%s):\n", versionedTag, v.Description())
	err = p.docker.Build(ctx, p.out, p.out, engine.BuildOptions{
		Dir:          root,
		BaseImage:    v.BaseImage(),
		Team:         p.opts.Team,
		Project:      p.opts.Project,
		BuildMode:    p.opts.Mode.Name(),
		VersionedTag: versionedTag,
		LatestTag:    latestTag,
	})
	if err != nil {
		return "", "", err
	}

	tr := tracker.New(root)
	warnOnTrackFailure(p.out, tr.TrackImage(versionedTag))
	warnOnTrackFailure(p.out, tr.TrackImage(latestTag))
	return versionedTag, latestTag, nil
}

// PushOne publishes both tags of a single variant.
func (p *Pipeline) PushOne(ctx context.Context, versionedTag, latestTag string) error {
	fmt.Fprintf(p.out, "Publishing %s:\n", versionedTag)
	if err := p.docker.Push(ctx, p.out, p.out, versionedTag); err != nil {
		return err
	}
	return p.docker.Push(ctx, p.out, p.out, latestTag)
}
