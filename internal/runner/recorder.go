package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Recorder is a Runner test double. It records every call in order and
// answers from canned responses keyed by command prefix.
type Recorder struct {
	// Calls is the ordered list of executed command lines.
	Calls []string

	// Outputs maps a command-line prefix to canned standard output.
	Outputs map[string]string

	// Failures maps a command-line prefix to an error to return. The call
	// is still recorded.
	Failures map[string]error

	// MissingTools lists tool names LookPath reports as not installed.
	MissingTools map[string]bool
}

// NewRecorder returns an empty Recorder that succeeds on every call.
func NewRecorder() *Recorder {
	return &Recorder{
		Outputs:      make(map[string]string),
		Failures:     make(map[string]error),
		MissingTools: make(map[string]bool),
	}
}

// Run implements Runner.
func (r *Recorder) Run(_ context.Context, _ string, _, _ io.Writer, name string, args ...string) error {
	line := commandLine(name, args)
	r.Calls = append(r.Calls, line)
	if err := r.failureFor(line); err != nil {
		return &ExternalToolError{Tool: name, Args: args, Err: err}
	}
	return nil
}

// Output implements Runner.
func (r *Recorder) Output(_ context.Context, _ string, name string, args ...string) (string, error) {
	line := commandLine(name, args)
	r.Calls = append(r.Calls, line)
	if err := r.failureFor(line); err != nil {
		return "", &ExternalToolError{Tool: name, Args: args, Err: err}
	}
	for prefix, out := range r.Outputs {
		if strings.HasPrefix(line, prefix) {
			return out, nil
		}
	}
	return "", nil
}

// LookPath implements Runner.
func (r *Recorder) LookPath(name string) error {
	if r.MissingTools[name] {
		return fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return nil
}

// CallsWithPrefix returns the recorded calls starting with prefix, in order.
func (r *Recorder) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range r.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) failureFor(line string) error {
	for prefix, err := range r.Failures {
		if strings.HasPrefix(line, prefix) {
			return err
		}
	}
	return nil
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
