package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/labforge-labs/labforge/internal/pipeline"
	"github.com/labforge-labs/labforge/internal/runner"
	"github.com/labforge-labs/labforge/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	uninstallDeleteRemote bool
	uninstallKeepImages   bool
	uninstallDryRun       bool
	uninstallYes          bool
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [project-dir]",
	Short: "Undo a workspace setup from its manifest",
	Long: `Remove everything a previous init recorded in the project manifest, in
reverse creation order: template-derived files, symlinks, empty scaffold
directories, local images, and (with --delete-remote) the remote repository.

Files and directories the manifest does not mention are never touched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUninstallWorkspace,
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallDeleteRemote, "delete-remote", false, "Also delete the remote repository")
	uninstallCmd.Flags().BoolVar(&uninstallKeepImages, "keep-images", false, "Leave local images in place")
	uninstallCmd.Flags().BoolVar(&uninstallDryRun, "dry-run", false, "Show what would be removed without removing it")
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstallWorkspace(cmd *cobra.Command, args []string) error {
	if err := activate(moduleTracker); err != nil {
		return err
	}

	root, err := uninstallRoot(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	entries, err := tracker.New(root).Load()
	if err != nil {
		return err
	}

	if !uninstallYes && !uninstallDryRun && len(entries) > 0 {
		ok, err := askYesNo(out,
			fmt.Sprintf("Remove %d recorded artifacts under %s?", len(entries), root), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled. Nothing was removed.")
			return nil
		}
	}

	return pipeline.Teardown(cmd.Context(), runner.ExecRunner{}, out, pipeline.TeardownOptions{
		Root:         root,
		DeleteRemote: uninstallDeleteRemote,
		KeepImages:   uninstallKeepImages,
		DryRun:       uninstallDryRun,
	})
}

// uninstallRoot resolves the project directory argument, defaulting to the
// current directory.
func uninstallRoot(args []string) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}
