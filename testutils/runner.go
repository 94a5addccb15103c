package testutils

import (
	"context"
	"strings"

	"github.com/fastnear/benchrunner"
)

// MockProcessRunner records every invocation and replays scripted results,
// keyed by the command's leading arguments.
type MockProcessRunner struct {
	Calls   []benchrunner.RunOptions
	Outputs map[string]string
	Errors  map[string]error
}

func NewMockProcessRunner() *MockProcessRunner {
	return &MockProcessRunner{
		Outputs: map[string]string{},
		Errors:  map[string]error{},
	}
}

func (r *MockProcessRunner) Run(_ context.Context, opts benchrunner.RunOptions) error {
	r.Calls = append(r.Calls, opts)
	return r.lookupErr(opts.Args)
}

func (r *MockProcessRunner) RunOutput(_ context.Context, opts benchrunner.RunOptions) (string, error) {
	r.Calls = append(r.Calls, opts)
	if err := r.lookupErr(opts.Args); err != nil {
		return "", err
	}

	for key, out := range r.Outputs {
		if strings.HasPrefix(strings.Join(opts.Args, " "), key) {
			return out, nil
		}
	}
	return "", nil
}

// Commands returns the recorded invocations as joined command lines.
func (r *MockProcessRunner) Commands() []string {
	cmds := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		cmds = append(cmds, strings.Join(call.Args, " "))
	}
	return cmds
}

func (r *MockProcessRunner) lookupErr(args []string) error {
	for key, err := range r.Errors {
		if strings.HasPrefix(strings.Join(args, " "), key) {
			return err
		}
	}
	return nil
}
