// Package runner implements the update-and-bench cycle: a strict linear
// pipeline that refreshes the checkout, short-circuits when already up to
// date, and otherwise rebuilds the node, restarts the local network, and
// runs one load test against it.
package runner

import (
	"context"

	"github.com/fastnear/benchrunner/localnet"
	"github.com/fastnear/benchrunner/vcs"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Source is the version-control collaborator.
type Source interface {
	Fetch(ctx context.Context) error
	Revisions(ctx context.Context) (vcs.RevisionPair, error)
	Pull(ctx context.Context) error
}

// Builder rebuilds the node binary.
type Builder interface {
	Build(ctx context.Context) error
}

// Supervisor controls the local test network.
type Supervisor interface {
	Stop(ctx context.Context) error
	Run(ctx context.Context) (*localnet.Network, error)
}

// Provisioner prepares the benchmark environment.
type Provisioner interface {
	Provision(ctx context.Context) error
}

// Benchmark runs one load test against the node at host.
type Benchmark interface {
	Run(ctx context.Context, host, fundingKey string) error
}

// KillFunc terminates processes by name, reporting whether anything was
// actually running.
type KillFunc func(name string) (localnet.KillResult, error)

// UpdateAndBenchRunner orchestrates the full cycle. Steps run strictly in
// order, each blocking on its external process; the first unrecoverable
// failure aborts the cycle with that step's status. There are no retries and
// no rollback: a failed benchmark leaves the network running.
type UpdateAndBenchRunner struct {
	Source      Source
	Builder     Builder
	Supervisor  Supervisor
	Kill        KillFunc
	Provisioner Provisioner
	Benchmark   Benchmark

	// LoadgenProcess is the process name of the load-generation tool to
	// tear down before restarting the experiment.
	LoadgenProcess string
}

func (r *UpdateAndBenchRunner) validate() error {
	catcher := grip.NewBasicCatcher()
	if r.Source == nil {
		catcher.Add(errors.New("source is not set"))
	}
	if r.Builder == nil {
		catcher.Add(errors.New("builder is not set"))
	}
	if r.Supervisor == nil {
		catcher.Add(errors.New("supervisor is not set"))
	}
	if r.Kill == nil {
		catcher.Add(errors.New("kill function is not set"))
	}
	if r.Provisioner == nil {
		catcher.Add(errors.New("provisioner is not set"))
	}
	if r.Benchmark == nil {
		catcher.Add(errors.New("benchmark is not set"))
	}
	return catcher.Resolve()
}

// Run executes one cycle. A nil return means either that the checkout was
// already up to date (the no-op path) or that the benchmark completed
// successfully; callers distinguish tool failures by their exit status
// carried in the error chain.
func (r *UpdateAndBenchRunner) Run(ctx context.Context) error {
	if err := r.validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := r.Source.Fetch(ctx); err != nil {
		return errors.WithStack(err)
	}

	revisions, err := r.Source.Revisions(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if revisions.Synced() {
		grip.Info(message.Fields{
			"message":  "already up to date, nothing to benchmark",
			"revision": revisions.Local,
		})
		return nil
	}
	grip.Info(message.Fields{
		"message": "upstream has new commits",
		"local":   revisions.Local,
		"remote":  revisions.Remote,
	})

	if err := r.Source.Pull(ctx); err != nil {
		return errors.WithStack(err)
	}

	r.teardown(ctx)

	if err := r.Builder.Build(ctx); err != nil {
		return errors.WithStack(err)
	}

	network, err := r.Supervisor.Run(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := r.Provisioner.Provision(ctx); err != nil {
		return errors.WithStack(err)
	}

	fundingKey, err := network.ResolveFundingKey()
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(r.Benchmark.Run(ctx, network.RPCAddr, fundingKey))
}

// teardown terminates any prior experiment processes. Both terminations are
// best-effort: a target that is not running is the expected steady state and
// never aborts the cycle.
func (r *UpdateAndBenchRunner) teardown(ctx context.Context) {
	result, err := r.Kill(r.LoadgenProcess)
	grip.Warning(message.WrapError(err, message.Fields{
		"message": "ignoring load generator kill failure",
		"process": r.LoadgenProcess,
	}))
	grip.InfoWhen(err == nil, message.Fields{
		"message": "load generator teardown",
		"process": r.LoadgenProcess,
		"result":  result.String(),
	})

	grip.Warning(message.WrapError(r.Supervisor.Stop(ctx), message.Fields{
		"message": "ignoring supervisor stop failure",
	}))
}
