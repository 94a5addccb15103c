// Package loadgen provisions the benchmark environment and drives the
// load-generation tool against a running node.
package loadgen

import (
	"context"
	"path/filepath"

	"github.com/fastnear/benchrunner"
	"github.com/pkg/errors"
)

// PythonEnv is an isolated dependency environment for the load-generation
// tool. Activation is realized by invoking the environment's own bin/
// executables rather than mutating the calling shell.
type PythonEnv struct {
	runner benchrunner.ProcessRunner
	python string
	dir    string
	repo   string
}

func NewPythonEnv(runner benchrunner.ProcessRunner, python, dir, repoDir string) *PythonEnv {
	return &PythonEnv{
		runner: runner,
		python: python,
		dir:    dir,
		repo:   repoDir,
	}
}

// Bin returns the path of an executable inside the environment.
func (e *PythonEnv) Bin(name string) string {
	return filepath.Join(e.dir, "bin", name)
}

// Create builds the environment. Recreating an existing environment is a
// no-op for venv, so Create is safe to run every cycle.
func (e *PythonEnv) Create(ctx context.Context) error {
	err := e.runner.Run(ctx, benchrunner.RunOptions{
		Args: []string{e.python, "-m", "venv", e.dir},
		Dir:  e.repo,
	})
	return errors.Wrap(err, "problem creating virtual environment")
}

// InstallRequirements installs the pinned dependency set.
func (e *PythonEnv) InstallRequirements(ctx context.Context, file string) error {
	err := e.runner.Run(ctx, benchrunner.RunOptions{
		Args: []string{e.Bin("pip"), "install", "-r", file},
		Dir:  e.repo,
	})
	return errors.Wrapf(err, "problem installing requirements from '%s'", file)
}

// Install installs a single package.
func (e *PythonEnv) Install(ctx context.Context, pkg string) error {
	err := e.runner.Run(ctx, benchrunner.RunOptions{
		Args: []string{e.Bin("pip"), "install", pkg},
		Dir:  e.repo,
	})
	return errors.Wrapf(err, "problem installing package '%s'", pkg)
}

// Provisioner prepares a PythonEnv with everything one benchmark run needs:
// the environment itself, the pinned requirements, and the load-generation
// tool. Every step is fatal on failure.
type Provisioner struct {
	env          *PythonEnv
	requirements string
}

func NewProvisioner(env *PythonEnv, requirements string) *Provisioner {
	return &Provisioner{env: env, requirements: requirements}
}

func (p *Provisioner) Provision(ctx context.Context) error {
	if err := p.env.Create(ctx); err != nil {
		return errors.WithStack(err)
	}
	if err := p.env.InstallRequirements(ctx, p.requirements); err != nil {
		return errors.WithStack(err)
	}
	if err := p.env.Install(ctx, benchrunner.LoadgenPackage); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
