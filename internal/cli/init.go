package cli

import (
	"github.com/labforge-labs/labforge/internal/branding"
	"github.com/labforge-labs/labforge/internal/config"
	"github.com/labforge-labs/labforge/internal/pipeline"
	"github.com/labforge-labs/labforge/internal/runner"
	"github.com/spf13/cobra"
)

var (
	initTeam        string
	initProject     string
	initAccount     string
	initVariants    []string
	initAllVariants bool
	initBuildMode   string
	initVersion     string
	initDotfiles    string
	initLink        bool
	initPrepareOnly bool
	initYes         bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a team research workspace",
	Long: `Initialize a complete team workspace: scaffold the project directory,
materialize project files from templates, build and publish the selected
environment variants, initialize version control, and create the private
team repository.

Existing files are never overwritten, so init is safe to re-run after a
partial failure. Everything it creates is recorded in the project manifest
for later uninstall.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initTeam, "team", "t", "", "Team identifier (image namespace; default from config or "+branding.EnvVar("TEAM")+")")
	initCmd.Flags().StringVarP(&initProject, "project", "p", "", "Project name (default: inferred from the current directory)")
	initCmd.Flags().StringVar(&initAccount, "account", "", "Remote account owning the repository (default: team)")
	initCmd.Flags().StringSliceVarP(&initVariants, "variant", "V", nil, "Environment variant to build (r-ver, rstudio, verse); repeatable")
	initCmd.Flags().BoolVar(&initAllVariants, "all-variants", false, "Build every environment variant")
	initCmd.Flags().StringVarP(&initBuildMode, "build-mode", "m", "", "Package tier: fast, standard, or comprehensive")
	initCmd.Flags().StringVar(&initVersion, "image-version", "", "Image version tag (default: v1.0.0)")
	initCmd.Flags().StringVarP(&initDotfiles, "dotfiles", "d", "", "Directory of dotfiles to copy into the project")
	initCmd.Flags().BoolVar(&initLink, "link-dotfiles", false, "Symlink dotfiles instead of copying")
	initCmd.Flags().BoolVar(&initPrepareOnly, "prepare-only", false, "Stage the build definition and stop before building")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := activate(modulePipeline); err != nil {
		return err
	}

	opts, err := initOptions()
	if err != nil {
		return err
	}

	p := pipeline.New(runner.ExecRunner{}, cmd.OutOrStdout(), opts, confirmRun)
	return p.Execute(cmd.Context())
}

// initOptions merges flags over config-file defaults into run options. Flag
// parsing failures (unknown variant or build mode) are reported before the
// pipeline touches anything.
func initOptions() (pipeline.Options, error) {
	opts := pipeline.Options{
		Team:         fallback(initTeam, config.Get(config.KeyTeam)),
		Project:      initProject,
		Account:      fallback(initAccount, config.Get(config.KeyAccount)),
		Version:      fallback(initVersion, config.Get(config.KeyVersion)),
		Dotfiles:     fallback(initDotfiles, config.Get(config.KeyDotfiles)),
		LinkDotfiles: initLink,
		AuthorName:   config.Get(config.KeyAuthorName),
		AuthorEmail:  config.Get(config.KeyAuthorEmail),
		PrepareOnly:  initPrepareOnly,
		SkipConfirm:  initYes,
	}

	if initAllVariants {
		opts.Variants = append(opts.Variants, pipeline.AllVariants...)
	} else {
		for _, name := range initVariants {
			v, err := pipeline.ParseVariant(name)
			if err != nil {
				return pipeline.Options{}, err
			}
			opts.Variants = append(opts.Variants, v)
		}
	}

	opts.Mode = pipeline.ModeStandard
	if modeName := fallback(initBuildMode, config.Get(config.KeyBuildMode)); modeName != "" {
		mode, err := pipeline.ParseBuildMode(modeName)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Mode = mode
	}

	return opts, nil
}

// fallback returns the flag value, or the config default when the flag was
// not set.
func fallback(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}
