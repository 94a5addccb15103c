// Package build invokes the node's build system.
package build

import (
	"context"

	"github.com/fastnear/benchrunner"
	"github.com/pkg/errors"
)

// Make builds a single make target in the repository directory.
type Make struct {
	runner benchrunner.ProcessRunner
	dir    string
	target string
}

func NewMake(runner benchrunner.ProcessRunner, dir, target string) *Make {
	return &Make{
		runner: runner,
		dir:    dir,
		target: target,
	}
}

// Build rebuilds the node binary. Any non-zero exit from the build system is
// fatal to the cycle.
func (m *Make) Build(ctx context.Context) error {
	err := m.runner.Run(ctx, benchrunner.RunOptions{
		Args: []string{"make", m.target},
		Dir:  m.dir,
	})
	return errors.Wrapf(err, "problem building target '%s'", m.target)
}
