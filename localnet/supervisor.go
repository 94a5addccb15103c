// Package localnet controls the local test network: starting and stopping
// the node-orchestration supervisor and tearing down stray experiment
// processes.
package localnet

import (
	"context"
	"strconv"

	"github.com/fastnear/benchrunner"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Topology is the node and shard count of the local network.
type Topology struct {
	Nodes  int
	Shards int
}

// Supervisor drives the network-orchestration tool. One Supervisor owns the
// local network for the lifetime of a run; concurrent operators are not
// supported.
type Supervisor struct {
	runner     benchrunner.ProcessRunner
	binary     string
	home       string
	rpcAddr    string
	keyFile    string
	topology   Topology
	binaryPath string
}

// SupervisorOptions configures a Supervisor.
type SupervisorOptions struct {
	// Binary is the orchestration tool executable.
	Binary string
	// Home is the local state directory the network runs out of.
	Home string
	// RPCAddr is the HTTP endpoint the started node serves.
	RPCAddr string
	// KeyFile optionally overrides the conventional validator key path.
	KeyFile string
	// Topology controls node and shard counts.
	Topology Topology
	// BinaryPath is the directory holding the freshly built node binary.
	BinaryPath string
}

func NewSupervisor(runner benchrunner.ProcessRunner, opts SupervisorOptions) *Supervisor {
	return &Supervisor{
		runner:     runner,
		binary:     opts.Binary,
		home:       opts.Home,
		rpcAddr:    opts.RPCAddr,
		keyFile:    opts.KeyFile,
		topology:   opts.Topology,
		binaryPath: opts.BinaryPath,
	}
}

// Stop terminates a previously started network. Stopping is best-effort: a
// supervisor that exits non-zero because nothing is running must not abort
// the cycle, so a tool-reported failure is logged and suppressed. Failing to
// launch the tool at all is still an error.
func (s *Supervisor) Stop(ctx context.Context) error {
	err := s.runner.Run(ctx, benchrunner.RunOptions{
		Args: []string{s.binary, "stop"},
	})
	if err == nil {
		return nil
	}

	if status, ok := benchrunner.ExitCode(err); ok {
		grip.Warning(message.Fields{
			"message": "ignoring supervisor stop failure",
			"binary":  s.binary,
			"status":  status,
		})
		return nil
	}

	return errors.Wrapf(err, "problem invoking '%s stop'", s.binary)
}

// Run starts the local network with the configured topology, pointing the
// supervisor at the freshly built binary and overriding any prior network
// state. The returned handle is threaded into the benchmark step.
func (s *Supervisor) Run(ctx context.Context) (*Network, error) {
	args := []string{
		s.binary, "run", "localnet",
		"--binary-path", s.binaryPath,
		"--num-nodes", strconv.Itoa(s.topology.Nodes),
		"--num-shards", strconv.Itoa(s.topology.Shards),
		"--override",
	}
	if err := s.runner.Run(ctx, benchrunner.RunOptions{Args: args}); err != nil {
		return nil, errors.Wrap(err, "problem starting local network")
	}

	grip.Info(message.Fields{
		"message": "local network started",
		"nodes":   s.topology.Nodes,
		"shards":  s.topology.Shards,
		"rpc":     s.rpcAddr,
	})

	return &Network{
		Home:    s.home,
		RPCAddr: s.rpcAddr,
		KeyFile: s.keyFile,
	}, nil
}
