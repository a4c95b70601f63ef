// Package runner is the substrate for driving external tools (docker, git,
// gh) through their command interfaces. Drivers depend on the Runner
// interface; ExecRunner shells out via os/exec, and Recorder captures the
// ordered call sequence for tests.
package runner
