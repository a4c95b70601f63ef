package cli

import (
	"fmt"
	"os"

	"github.com/labforge-labs/labforge/internal/config"
	"github.com/labforge-labs/labforge/internal/engine"
	"github.com/labforge-labs/labforge/internal/pipeline"
	"github.com/labforge-labs/labforge/internal/runner"
	"github.com/spf13/cobra"
)

var (
	buildTeam         string
	buildProject      string
	buildMode         string
	buildImageVersion string
	buildPush         bool
	buildSkipPush     bool
)

var buildCmd = &cobra.Command{
	Use:   "build <variant>",
	Short: "Build an additional environment variant",
	Long: `Build one more environment variant (r-ver, rstudio, verse) for an already
initialized workspace, against the existing build definition.

Team and project are detected from previously built variant images, falling
back to the current directory's name; override with --team and --project.
After a successful build you are offered a registry push (default no).`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildTeam, "team", "t", "", "Team identifier (default: detected)")
	buildCmd.Flags().StringVarP(&buildProject, "project", "p", "", "Project name (default: detected)")
	buildCmd.Flags().StringVarP(&buildMode, "build-mode", "m", "", "Package tier: fast, standard, or comprehensive")
	buildCmd.Flags().StringVar(&buildImageVersion, "image-version", "", "Image version tag (default: v1.0.0)")
	buildCmd.Flags().BoolVar(&buildPush, "push", false, "Push both tags after the build without asking")
	buildCmd.Flags().BoolVar(&buildSkipPush, "no-push", false, "Never push, never ask")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := activate(modulePipeline); err != nil {
		return err
	}

	variant, err := pipeline.ParseVariant(args[0])
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	run := runner.ExecRunner{}
	out := cmd.OutOrStdout()

	team, project := buildTeam, buildProject
	if team == "" || project == "" {
		detectedTeam, detectedProject := pipeline.DetectIdentity(cmd.Context(), engine.New(run), wd)
		if team == "" {
			team = fallback(detectedTeam, config.Get(config.KeyTeam))
		}
		if project == "" {
			project = detectedProject
		}
	}
	if team == "" {
		return fmt.Errorf("could not detect a team identifier; pass --team <name>")
	}

	opts := pipeline.Options{
		Team:        team,
		Project:     project,
		Version:     fallback(buildImageVersion, config.Get(config.KeyVersion)),
		SkipConfirm: true,
		WorkDir:     wd,
	}
	opts.Mode = pipeline.ModeStandard
	if modeName := fallback(buildMode, config.Get(config.KeyBuildMode)); modeName != "" {
		opts.Mode, err = pipeline.ParseBuildMode(modeName)
		if err != nil {
			return err
		}
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	p := pipeline.New(run, out, opts, nil)
	versionedTag, latestTag, err := p.BuildOne(cmd.Context(), opts.ProjectRoot(), variant)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Built %s and %s.\n", versionedTag, latestTag)

	if buildSkipPush {
		return nil
	}
	push := buildPush
	if !push {
		push, err = askYesNo(out, fmt.Sprintf("Push %s to the registry?", versionedTag), false)
		if err != nil {
			return err
		}
	}
	if !push {
		fmt.Fprintf(out, "Not pushed. Publish later with: docker push %s && docker push %s\n",
			versionedTag, latestTag)
		return nil
	}
	return p.PushOne(cmd.Context(), versionedTag, latestTag)
}
