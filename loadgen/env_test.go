package loadgen

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fastnear/benchrunner"
	"github.com/fastnear/benchrunner/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPythonEnvBin(t *testing.T) {
	env := NewPythonEnv(nil, "python3", "/srv/nearcore/venv", "/srv/nearcore")
	assert.Equal(t, filepath.Join("/srv/nearcore/venv", "bin", "pip"), env.Bin("pip"))
}

func TestProvisionerRunsStepsInOrder(t *testing.T) {
	mock := testutils.NewMockProcessRunner()
	env := NewPythonEnv(mock, "python3", "/srv/nearcore/venv", "/srv/nearcore")
	provisioner := NewProvisioner(env, "pytest/requirements.txt")

	require.NoError(t, provisioner.Provision(context.Background()))
	assert.Equal(t, []string{
		"python3 -m venv /srv/nearcore/venv",
		"/srv/nearcore/venv/bin/pip install -r pytest/requirements.txt",
		"/srv/nearcore/venv/bin/pip install locust",
	}, mock.Commands())
}

func TestProvisionerHaltsOnFailure(t *testing.T) {
	mock := testutils.NewMockProcessRunner()
	mock.Errors["python3 -m venv"] = &benchrunner.ExitStatusError{Command: "python3 -m venv", Status: 1}
	env := NewPythonEnv(mock, "python3", "/srv/nearcore/venv", "/srv/nearcore")
	provisioner := NewProvisioner(env, "pytest/requirements.txt")

	err := provisioner.Provision(context.Background())
	require.Error(t, err)
	assert.Len(t, mock.Calls, 1)
}
