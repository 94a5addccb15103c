package operations

import (
	"context"

	"github.com/fastnear/benchrunner"
	"github.com/fastnear/benchrunner/build"
	"github.com/fastnear/benchrunner/loadgen"
	"github.com/fastnear/benchrunner/localnet"
	"github.com/fastnear/benchrunner/runner"
	"github.com/fastnear/benchrunner/vcs"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Bench returns the update-and-bench cycle as a cli command. The cycle's
// behavior is fixed; it takes no flags of its own.
func Bench() cli.Command {
	return cli.Command{
		Name:  "run",
		Usage: "synchronize the checkout, rebuild the node, restart the localnet, and run one load test",
		Action: func(c *cli.Context) error {
			return runBench(context.Background())
		},
	}
}

func runBench(ctx context.Context) error {
	conf, err := benchrunner.LoadConfiguration()
	if err != nil {
		return errors.Wrap(err, "problem resolving run configuration")
	}

	env := benchrunner.GetEnvironment()
	if err := env.Configure(conf); err != nil {
		return errors.Wrap(err, "problem configuring environment")
	}
	defer func() {
		grip.Warning(errors.Wrap(env.Close(ctx), "problem closing environment"))
	}()

	procRunner, err := env.Runner()
	if err != nil {
		return errors.WithStack(err)
	}

	pythonEnv := loadgen.NewPythonEnv(procRunner, conf.Python, conf.VenvDir, conf.RepoDir)
	cycle := &runner.UpdateAndBenchRunner{
		Source:  vcs.NewRepository(procRunner, conf.RepoDir, conf.GitRemote, conf.GitBranch),
		Builder: build.NewMake(procRunner, conf.RepoDir, conf.BuildTarget),
		Supervisor: localnet.NewSupervisor(procRunner, localnet.SupervisorOptions{
			Binary:     conf.NearupBinary,
			Home:       conf.HomeDir,
			RPCAddr:    conf.Host,
			KeyFile:    conf.FundingKeyFile,
			Topology:   localnet.Topology{Nodes: conf.NumNodes, Shards: conf.NumShards},
			BinaryPath: conf.BinaryPath,
		}),
		Kill:        localnet.KillByName,
		Provisioner: loadgen.NewProvisioner(pythonEnv, conf.RequirementsFile),
		Benchmark: loadgen.NewLocust(procRunner, pythonEnv, loadgen.Options{
			ScenarioFile: conf.ScenarioFile,
			Users:        conf.Users,
			SpawnRate:    conf.SpawnRate,
			Workers:      conf.Workers,
		}),
		LoadgenProcess: benchrunner.LoadgenProcessName,
	}

	err = cycle.Run(ctx)
	if status, ok := benchrunner.ExitCode(err); ok {
		if status < 1 {
			status = 1
		}
		return cli.NewExitError(err.Error(), status)
	}

	return errors.WithStack(err)
}
