package loadgen

import (
	"context"
	"strconv"

	"github.com/fastnear/benchrunner"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// Options fixes the shape of one benchmark invocation: scenario, load
// volume, and worker layout. The target host and funding key vary per run
// and are supplied to Run.
type Options struct {
	ScenarioFile string
	Users        int
	SpawnRate    int
	Workers      int
}

// Locust runs the load-generation tool out of a provisioned environment. The
// tool owns its worker-process concurrency; nothing here coordinates it.
type Locust struct {
	runner benchrunner.ProcessRunner
	env    *PythonEnv
	opts   Options
}

func NewLocust(runner benchrunner.ProcessRunner, env *PythonEnv, opts Options) *Locust {
	return &Locust{
		runner: runner,
		env:    env,
		opts:   opts,
	}
}

// Args builds the headless invocation for the given host and funding key.
func (l *Locust) Args(host, fundingKey string) []string {
	return []string{
		l.env.Bin("locust"),
		"-H", host,
		"-f", l.opts.ScenarioFile,
		"--funding-key", fundingKey,
		"-u", strconv.Itoa(l.opts.Users),
		"-r", strconv.Itoa(l.opts.SpawnRate),
		"--processes", strconv.Itoa(l.opts.Workers),
		"--headless",
	}
}

// Run executes one benchmark against the node at host. The tool's own exit
// status is the cycle's final status, so a non-zero exit surfaces unchanged
// as an *ExitStatusError.
func (l *Locust) Run(ctx context.Context, host, fundingKey string) error {
	grip.Info(message.Fields{
		"message":    "starting load generation",
		"host":       host,
		"scenario":   l.opts.ScenarioFile,
		"users":      l.opts.Users,
		"spawn_rate": l.opts.SpawnRate,
		"workers":    l.opts.Workers,
	})

	return l.runner.Run(ctx, benchrunner.RunOptions{
		Args: l.Args(host, fundingKey),
		Dir:  l.env.repo,
		Env: map[string]string{
			benchrunner.FundingKeyEnvVar: fundingKey,
		},
	})
}
