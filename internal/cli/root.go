package cli

import (
	"fmt"
	"os"

	"github.com/labforge-labs/labforge/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds reproducible research workspaces: it materializes
project files from templates, builds and publishes containerized environment
variants, initializes version control, and creates the team's remote
repository. Every side effect is recorded in a manifest so setup can be
re-run safely or fully undone.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
