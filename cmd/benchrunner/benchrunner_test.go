package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApp(t *testing.T) {
	app := buildApp()

	assert.Equal(t, "benchrunner", app.Name)
	require.Len(t, app.Commands, 1)
	assert.Equal(t, "run", app.Commands[0].Name)
	// no-argument invocation runs the cycle directly
	assert.NotNil(t, app.Action)
}

func TestLoggingSetup(t *testing.T) {
	assert.NoError(t, loggingSetup("benchrunner", "debug"))
	assert.NoError(t, loggingSetup("benchrunner", "info"))
}
