package benchrunner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration()
	require.NoError(t, err)

	assert.Equal(t, "origin", conf.GitRemote)
	assert.Equal(t, "master", conf.GitBranch)
	assert.Equal(t, "neard", conf.BuildTarget)
	assert.Equal(t, "nearup", conf.NearupBinary)
	assert.Equal(t, "http://127.0.0.1:3030", conf.Host)
	assert.Equal(t, 400, conf.Users)
	assert.Equal(t, 10, conf.SpawnRate)
	assert.Equal(t, 8, conf.Workers)
	assert.Equal(t, 1, conf.NumNodes)
	assert.Equal(t, 1, conf.NumShards)
	assert.Contains(t, conf.HomeDir, ".near")

	assert.NoError(t, conf.Validate())
}

func TestLoadConfigurationFromEnvironment(t *testing.T) {
	t.Setenv("BENCH_REPO_DIR", "/srv/nearcore")
	t.Setenv("BENCH_GIT_BRANCH", "main")
	t.Setenv("BENCH_USERS", "50")
	t.Setenv("BENCH_FUNDING_KEY", "/tmp/key.json")

	conf, err := LoadConfiguration()
	require.NoError(t, err)

	assert.Equal(t, "/srv/nearcore", conf.RepoDir)
	assert.Equal(t, "main", conf.GitBranch)
	assert.Equal(t, 50, conf.Users)
	assert.Equal(t, "/tmp/key.json", conf.FundingKeyFile)

	// derived paths follow the repository directory
	assert.Equal(t, "/srv/nearcore/target/release", conf.BinaryPath)
	assert.Equal(t, "/srv/nearcore/venv", conf.VenvDir)
}

func TestLoadConfigurationRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("BENCH_SPAWN_RATE", "fast")

	_, err := LoadConfiguration()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BENCH_SPAWN_RATE")
}

func TestConfigurationValidation(t *testing.T) {
	for name, mutate := range map[string]func(*RunConfiguration){
		"MissingRepoDir":  func(c *RunConfiguration) { c.RepoDir = "" },
		"MissingBranch":   func(c *RunConfiguration) { c.GitBranch = "" },
		"MissingTarget":   func(c *RunConfiguration) { c.BuildTarget = "" },
		"MissingHome":     func(c *RunConfiguration) { c.HomeDir = "" },
		"MissingHost":     func(c *RunConfiguration) { c.Host = "" },
		"MissingScenario": func(c *RunConfiguration) { c.ScenarioFile = "" },
		"ZeroUsers":       func(c *RunConfiguration) { c.Users = 0 },
		"ZeroSpawnRate":   func(c *RunConfiguration) { c.SpawnRate = 0 },
		"ZeroWorkers":     func(c *RunConfiguration) { c.Workers = 0 },
		"ZeroShards":      func(c *RunConfiguration) { c.NumShards = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			conf, err := LoadConfiguration()
			require.NoError(t, err)
			require.NoError(t, conf.Validate())

			mutate(conf)
			assert.Error(t, conf.Validate())
		})
	}
}
