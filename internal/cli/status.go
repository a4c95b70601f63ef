package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/labforge-labs/labforge/internal/tracker"
	"github.com/spf13/cobra"
)

var statusValidate bool

var statusCmd = &cobra.Command{
	Use:   "status [project-dir]",
	Short: "Show what the workspace manifest has recorded",
	Long: `Print the project manifest: every artifact a previous init created, in
creation order. With --validate the manifest is also checked against its
schema.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusValidate, "validate", false, "Validate the manifest against its schema")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := activate(moduleTracker); err != nil {
		return err
	}

	root, err := statusRoot(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	tr := tracker.New(root)
	entries, err := tr.Load()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(out, "No manifest at %s.\n", tr.Path())
		return nil
	}

	fmt.Fprintf(out, "Manifest %s (%d entries):\n", tr.Path(), len(entries))
	counts := map[tracker.Kind]int{}
	for _, e := range entries {
		counts[e.Kind]++
		switch e.Kind {
		case tracker.KindSymlink:
			fmt.Fprintf(out, "  %-10s %s -> %s\n", e.Kind, e.Path, e.Target)
		case tracker.KindTemplate:
			fmt.Fprintf(out, "  %-10s %s (from %s)\n", e.Kind, e.Path, e.Template)
		default:
			fmt.Fprintf(out, "  %-10s %s\n", e.Kind, e.Path)
		}
	}
	fmt.Fprintf(out, "Totals: %d files, %d directories, %d symlinks, %d templates, %d images, %d repositories\n",
		counts[tracker.KindFile], counts[tracker.KindDir], counts[tracker.KindSymlink],
		counts[tracker.KindTemplate], counts[tracker.KindImage], counts[tracker.KindRepo])

	if !statusValidate {
		return nil
	}

	result, err := tracker.ValidateFile(tr.Path())
	if err != nil {
		return err
	}
	if result.Valid {
		fmt.Fprintln(out, "  [ OK ] manifest is valid")
		return nil
	}
	fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(out, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(out, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", tr.Path(), len(result.Issues))
}

func statusRoot(args []string) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}
