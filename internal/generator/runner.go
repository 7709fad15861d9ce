package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

// Command describes one external generator launch.
type Command struct {
	// Script is the path of the bash script to run.
	Script string

	// Args are passed to the script positionally, in order.
	Args []string

	// Env is added on top of the current process environment.
	Env map[string]string

	// Dir is the working directory for the child. Empty means inherit.
	Dir string
}

// Outcome is the structured result of a finished child process.
type Outcome struct {
	ExitCode int
}

// Success reports whether the child exited with status zero.
func (o Outcome) Success() bool {
	return o.ExitCode == 0
}

// ProcessRunner launches a Command and blocks until it terminates.
//
// A non-zero exit is reported through Outcome, not as an error. The error
// return is reserved for failures to start or wait on the process.
type ProcessRunner interface {
	Run(ctx context.Context, cmd Command) (Outcome, error)
}

// ExecRunner runs scripts through bash with the child's standard streams
// connected directly to the given readers and writers. Nothing is buffered
// or transformed, so interactive scripts keep working.
type ExecRunner struct {
	// Shell is the interpreter binary. Defaults to "bash".
	Shell string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner attached to the process's own stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Shell:  "bash",
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run implements ProcessRunner.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Outcome, error) {
	shell := r.Shell
	if shell == "" {
		shell = "bash"
	}

	args := make([]string, 0, len(c.Args)+1)
	args = append(args, c.Script)
	args = append(args, c.Args...)

	// #nosec G204 -- script path comes from the toolkit root, args from validated config
	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Dir = c.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = mergeEnv(os.Environ(), c.Env)

	err := cmd.Run()
	if err == nil {
		return Outcome{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal; there is no exit status to carry.
			code = 1
		}
		return Outcome{ExitCode: code}, nil
	}
	return Outcome{}, fmt.Errorf("failed to run %s %s: %w", shell, c.Script, err)
}

// mergeEnv appends extra variables to base in sorted key order. Later
// entries win when exec resolves duplicates, so extra overrides base.
func mergeEnv(base []string, extra map[string]string) []string {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(base)+len(keys))
	env = append(env, base...)
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}
