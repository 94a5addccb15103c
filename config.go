package benchrunner

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// Default benchmark parameters, matching the standard single-node
// single-shard load test.
const (
	defaultGitRemote    = "origin"
	defaultGitBranch    = "master"
	defaultBuildTarget  = "neard"
	defaultNearupBinary = "nearup"
	defaultPython       = "python3"
	defaultHost         = "http://127.0.0.1:3030"
	defaultScenario     = "pytest/tests/loadtest/locust/locustfiles/ft.py"
	defaultRequirements = "pytest/requirements.txt"
	defaultUsers        = 400
	defaultSpawnRate    = 10
	defaultWorkers      = 8
	defaultNumNodes     = 1
	defaultNumShards    = 1
)

// RunConfiguration holds the settings for one benchmark cycle. It is
// resolved from the process environment exactly once, before any step runs,
// and is read-only afterwards.
type RunConfiguration struct {
	RepoDir          string
	GitRemote        string
	GitBranch        string
	BuildTarget      string
	NearupBinary     string
	HomeDir          string
	BinaryPath       string
	NumNodes         int
	NumShards        int
	Host             string
	ScenarioFile     string
	RequirementsFile string
	FundingKeyFile   string
	Users            int
	SpawnRate        int
	Workers          int
	Python           string
	VenvDir          string
}

// LoadConfiguration resolves a RunConfiguration from the process
// environment, falling back to the conventional localnet defaults.
func LoadConfiguration() (*RunConfiguration, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "problem resolving user home directory")
	}

	conf := &RunConfiguration{
		RepoDir:          envOr("BENCH_REPO_DIR", "."),
		GitRemote:        envOr("BENCH_GIT_REMOTE", defaultGitRemote),
		GitBranch:        envOr("BENCH_GIT_BRANCH", defaultGitBranch),
		BuildTarget:      envOr("BENCH_BUILD_TARGET", defaultBuildTarget),
		NearupBinary:     envOr("BENCH_NEARUP_BIN", defaultNearupBinary),
		HomeDir:          envOr("BENCH_NEAR_HOME", filepath.Join(home, ".near")),
		Host:             envOr("BENCH_HOST", defaultHost),
		ScenarioFile:     envOr("BENCH_SCENARIO", defaultScenario),
		RequirementsFile: envOr("BENCH_REQUIREMENTS", defaultRequirements),
		FundingKeyFile:   os.Getenv("BENCH_FUNDING_KEY"),
		Python:           envOr("BENCH_PYTHON", defaultPython),
		NumNodes:         defaultNumNodes,
		NumShards:        defaultNumShards,
	}

	conf.BinaryPath = envOr("BENCH_BINARY_PATH", filepath.Join(conf.RepoDir, "target", "release"))
	conf.VenvDir = envOr("BENCH_VENV_DIR", filepath.Join(conf.RepoDir, "venv"))

	catcher := grip.NewBasicCatcher()
	conf.Users, err = envOrInt("BENCH_USERS", defaultUsers)
	catcher.Add(err)
	conf.SpawnRate, err = envOrInt("BENCH_SPAWN_RATE", defaultSpawnRate)
	catcher.Add(err)
	conf.Workers, err = envOrInt("BENCH_WORKERS", defaultWorkers)
	catcher.Add(err)
	if catcher.HasErrors() {
		return nil, catcher.Resolve()
	}

	return conf, nil
}

func (c *RunConfiguration) Validate() error {
	catcher := grip.NewBasicCatcher()

	if c.RepoDir == "" {
		catcher.Add(errors.New("must specify a repository directory"))
	}
	if c.GitRemote == "" || c.GitBranch == "" {
		catcher.Add(errors.New("must specify a git remote and branch"))
	}
	if c.BuildTarget == "" {
		catcher.Add(errors.New("must specify a build target"))
	}
	if c.HomeDir == "" {
		catcher.Add(errors.New("must specify the localnet home directory"))
	}
	if c.Host == "" {
		catcher.Add(errors.New("must specify the node RPC endpoint"))
	}
	if c.ScenarioFile == "" {
		catcher.Add(errors.New("must specify a load test scenario file"))
	}
	if c.Users < 1 {
		catcher.Add(errors.New("must specify a positive user count"))
	}
	if c.SpawnRate < 1 {
		catcher.Add(errors.New("must specify a positive spawn rate"))
	}
	if c.Workers < 1 {
		catcher.Add(errors.New("must specify a positive worker count"))
	}
	if c.NumNodes < 1 || c.NumShards < 1 {
		catcher.Add(errors.New("topology requires at least one node and one shard"))
	}

	return catcher.Resolve()
}

func envOr(name, def string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return def
}

func envOrInt(name string, def int) (int, error) {
	val := os.Getenv(name)
	if val == "" {
		return def, nil
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid value '%s' for %s", val, name)
	}
	return parsed, nil
}
