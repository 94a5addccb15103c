package localnet

import (
	"context"
	"testing"

	"github.com/fastnear/benchrunner"
	"github.com/fastnear/benchrunner/testutils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSupervisor(mock *testutils.MockProcessRunner) *Supervisor {
	return NewSupervisor(mock, SupervisorOptions{
		Binary:     "nearup",
		Home:       "/home/bench/.near",
		RPCAddr:    "http://127.0.0.1:3030",
		Topology:   Topology{Nodes: 1, Shards: 1},
		BinaryPath: "/srv/nearcore/target/release",
	})
}

func TestSupervisorRun(t *testing.T) {
	mock := testutils.NewMockProcessRunner()
	supervisor := newTestSupervisor(mock)

	network, err := supervisor.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, mock.Calls, 1)
	assert.Equal(t, []string{
		"nearup", "run", "localnet",
		"--binary-path", "/srv/nearcore/target/release",
		"--num-nodes", "1",
		"--num-shards", "1",
		"--override",
	}, mock.Calls[0].Args)

	require.NotNil(t, network)
	assert.Equal(t, "/home/bench/.near", network.Home)
	assert.Equal(t, "http://127.0.0.1:3030", network.RPCAddr)
}

func TestSupervisorRunFailureIsFatal(t *testing.T) {
	mock := testutils.NewMockProcessRunner()
	mock.Errors["nearup run"] = &benchrunner.ExitStatusError{Command: "nearup run localnet", Status: 1}
	supervisor := newTestSupervisor(mock)

	network, err := supervisor.Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, network)
}

func TestSupervisorStopToleratesToolFailure(t *testing.T) {
	t.Run("CleanStop", func(t *testing.T) {
		mock := testutils.NewMockProcessRunner()
		supervisor := newTestSupervisor(mock)

		require.NoError(t, supervisor.Stop(context.Background()))
		assert.Equal(t, []string{"nearup stop"}, mock.Commands())
	})

	t.Run("NonZeroExitSuppressed", func(t *testing.T) {
		mock := testutils.NewMockProcessRunner()
		mock.Errors["nearup stop"] = &benchrunner.ExitStatusError{Command: "nearup stop", Status: 1}
		supervisor := newTestSupervisor(mock)

		assert.NoError(t, supervisor.Stop(context.Background()))
	})

	t.Run("LaunchFailureSurfaces", func(t *testing.T) {
		mock := testutils.NewMockProcessRunner()
		mock.Errors["nearup stop"] = errors.New("no such executable")
		supervisor := newTestSupervisor(mock)

		assert.Error(t, supervisor.Stop(context.Background()))
	})
}
