package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/labforge-labs/labforge/internal/branding"
	"github.com/labforge-labs/labforge/internal/config"
	"github.com/labforge-labs/labforge/internal/engine"
	"github.com/labforge-labs/labforge/internal/platform"
	"github.com/labforge-labs/labforge/internal/remote"
	"github.com/labforge-labs/labforge/internal/runner"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for workspace prerequisites",
	Long:  `Run diagnostic checks on the tools a workspace setup depends on.`,
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	if err := activate(moduleConfig); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	run := runner.ExecRunner{}
	ctx := cmd.Context()

	fmt.Fprintln(out, "Tool check:")
	checkTool(out, run, "docker")
	checkTool(out, run, "gh")
	checkTool(out, run, "git")

	docker := engine.New(run)
	host := remote.New(run)

	fmt.Fprintln(out, "Service check:")
	if docker.Installed() {
		if docker.DaemonReachable(ctx) {
			fmt.Fprintln(out, "  [ OK ] docker daemon reachable")
		} else {
			fmt.Fprintln(out, "  [FAIL] docker daemon not reachable")
		}
		if docker.LoggedIn(ctx) {
			fmt.Fprintln(out, "  [ OK ] registry credentials present")
		} else {
			fmt.Fprintln(out, "  [WARN] no registry login detected")
		}
	}
	if host.Installed() {
		if host.Authenticated(ctx) {
			fmt.Fprintln(out, "  [ OK ] gh authenticated")
		} else {
			fmt.Fprintln(out, "  [FAIL] gh not authenticated (run `gh auth login`)")
		}
	}

	fmt.Fprintln(out, "Environment check:")
	if platform.IsSymlinkSupported() {
		fmt.Fprintln(out, "  [ OK ] symlinks supported")
	} else {
		fmt.Fprintln(out, "  [WARN] symlinks unsupported; dotfiles will be copied")
	}
	if _, err := os.Stat(config.FilePath()); err == nil {
		fmt.Fprintf(out, "  [ OK ] config file at %s\n", config.FilePath())
	} else {
		fmt.Fprintf(out, "  [INFO] no config file yet (create one with `labforge config set team <name>`)\n")
	}
	if team := config.Get(config.KeyTeam); team != "" {
		fmt.Fprintf(out, "  [ OK ] default team: %s\n", team)
	} else {
		fmt.Fprintln(out, "  [WARN] no default team configured")
	}
	fmt.Fprintf(out, "  [INFO] images publish to %s\n", branding.Registry())

	return nil
}

func checkTool(w io.Writer, run runner.Runner, name string) {
	if err := run.LookPath(name); err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found\n", name)
}
