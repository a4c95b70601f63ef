package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes external commands. All pipeline side effects on external
// systems go through this interface.
type Runner interface {
	// Run executes the command in dir (empty means inherit), streaming
	// output to stdout/stderr. A non-zero exit is returned as an error.
	Run(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error

	// Output executes the command and returns its trimmed standard output.
	Output(ctx context.Context, dir string, name string, args ...string) (string, error)

	// LookPath reports whether the named tool is installed.
	LookPath(name string) error
}

// ExternalToolError reports a failed external command with enough context to
// act on.
type ExternalToolError struct {
	Tool string
	Args []string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return &ExternalToolError{Tool: name, Args: args, Err: err}
	}
	return nil
}

// Output implements Runner.
func (ExecRunner) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return "", &ExternalToolError{Tool: name, Args: args, Err: err}
	}
	return strings.TrimSpace(buf.String()), nil
}

// LookPath implements Runner.
func (ExecRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}
