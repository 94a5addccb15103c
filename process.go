package benchrunner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mongodb/jasper"
	"github.com/mongodb/jasper/options"
	"github.com/pkg/errors"
)

// RunOptions describes a single external tool invocation.
type RunOptions struct {
	Args []string
	Dir  string
	Env  map[string]string
}

// ProcessRunner invokes external tools as managed processes, blocking until
// they exit. Non-zero exits surface as *ExitStatusError so that callers can
// propagate the tool's own status.
type ProcessRunner interface {
	// Run executes the command, streaming its output to this process's
	// stdout and stderr.
	Run(ctx context.Context, opts RunOptions) error

	// RunOutput executes the command and returns its trimmed stdout.
	RunOutput(ctx context.Context, opts RunOptions) (string, error)
}

// ExitStatusError reports a tool that ran to completion but exited non-zero.
type ExitStatusError struct {
	Command string
	Status  int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("command '%s' exited with status %d", e.Command, e.Status)
}

// ExitCode extracts the exit status carried by an error chain, walking
// through any pkg/errors wrapping. The second return is false when the error
// does not originate from a non-zero tool exit.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	if exitErr, ok := errors.Cause(err).(*ExitStatusError); ok {
		return exitErr.Status, true
	}
	return 0, false
}

// NewProcessRunner returns a ProcessRunner backed by the given jasper
// manager.
func NewProcessRunner(manager jasper.Manager) ProcessRunner {
	return &jasperRunner{manager: manager}
}

type jasperRunner struct {
	manager jasper.Manager
}

func (r *jasperRunner) Run(ctx context.Context, opts RunOptions) error {
	output := options.Output{Output: os.Stdout, Error: os.Stderr}
	return r.run(ctx, opts, output)
}

func (r *jasperRunner) RunOutput(ctx context.Context, opts RunOptions) (string, error) {
	buf := &bytes.Buffer{}
	output := options.Output{Output: buf, Error: os.Stderr}
	if err := r.run(ctx, opts, output); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func (r *jasperRunner) run(ctx context.Context, opts RunOptions, output options.Output) error {
	if len(opts.Args) == 0 {
		return errors.New("cannot run an empty command")
	}

	createOpts := &options.Create{
		Args:             opts.Args,
		WorkingDirectory: opts.Dir,
		Environment:      opts.Env,
		Output:           output,
	}
	proc, err := r.manager.CreateProcess(ctx, createOpts)
	if err != nil {
		return errors.Wrapf(err, "problem starting '%s'", strings.Join(opts.Args, " "))
	}

	exitStatus, err := proc.Wait(ctx)
	if exitStatus != 0 {
		return &ExitStatusError{
			Command: strings.Join(opts.Args, " "),
			Status:  exitStatus,
		}
	}
	if err != nil {
		return errors.Wrapf(err, "problem waiting on '%s'", strings.Join(opts.Args, " "))
	}

	return nil
}
