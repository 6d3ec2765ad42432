package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriftCmdNoRepo(t *testing.T) {
	a := newTestApp(newStubEngine())
	a.cfg.DotfilesDir = t.TempDir()
	a.tools = a.buildToolset(nil)
	root := NewRootCmd("test", a)

	out, err := execute(root, "drift-check")

	// agent contract: errors surface in the report, not as a failure
	require.NoError(t, err)
	assert.Contains(t, out, "Error checking drift")
}

func TestDriftCmdJSON(t *testing.T) {
	a := newTestApp(newStubEngine())
	a.cfg.DotfilesDir = t.TempDir()
	a.tools = a.buildToolset(nil)
	root := NewRootCmd("test", a)

	out, err := execute(root, "drift-check", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"status": "error"`)
}
