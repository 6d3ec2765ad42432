package main

import (
	"testing"

	"github.com/4thel00z/dotmem/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoadmapAddCmd(t *testing.T) {
	engine := newStubEngine()
	root := NewRootCmd("test", newTestApp(engine))

	out, err := execute(root, "roadmap", "add", "migrate to nix-darwin",
		"--hypothesis", "declarative config",
		"--blockers", "free weekend",
		"--priority", "high")

	require.NoError(t, err)
	assert.Contains(t, out, "Roadmap Entry saved")
	require.Len(t, engine.added, 1)
	assert.Contains(t, engine.added[0], "Priority: HIGH")
}

func TestRoadmapAddCmdBadPriority(t *testing.T) {
	root := NewRootCmd("test", newTestApp(newStubEngine()))

	_, err := execute(root, "roadmap", "add", "idea", "--priority", "urgent")
	require.Error(t, err)
}

func TestRoadmapListCmd(t *testing.T) {
	engine := newStubEngine()
	engine.searchResp = &internal.SearchResponse{Results: []internal.MemoryRecord{
		{ID: "r1", Memory: "Roadmap Idea: nix-darwin", Score: 0.8},
	}}
	root := NewRootCmd("test", newTestApp(engine))

	out, err := execute(root, "roadmap", "list", "--status", "blocked")

	require.NoError(t, err)
	assert.Equal(t, "roadmap blocked", engine.lastQuery)
	assert.Contains(t, out, "Roadmap Idea: nix-darwin")
}

func TestTrialStartCmd(t *testing.T) {
	engine := newStubEngine()
	root := NewRootCmd("test", newTestApp(engine))

	out, err := execute(root, "trial", "start", "zoxide", "--days", "7", "--criteria", "faster jumps")

	require.NoError(t, err)
	assert.Contains(t, out, "7 days Trial has been set for zoxide")
	assert.Equal(t, "true", engine.addedMeta[0]["active"])
}

func TestTrialListCmd(t *testing.T) {
	engine := newStubEngine()
	root := NewRootCmd("test", newTestApp(engine))

	out, err := execute(root, "trial", "list", "--min-days", "5")

	require.NoError(t, err)
	assert.Equal(t, "active plugin trials", engine.lastQuery)
	assert.Contains(t, out, "No active trials.")
}

func TestTroubleshootLogCmd(t *testing.T) {
	engine := newStubEngine()
	root := NewRootCmd("test", newTestApp(engine))

	out, err := execute(root, "troubleshoot", "log", "command not found: nvm",
		"--cause", "loader not sourced",
		"--fix", "source nvm.sh in .zshrc")

	require.NoError(t, err)
	assert.Contains(t, out, "Troubleshooting Knowledge Base Updated.")
	assert.Contains(t, engine.added[0], "Cause: loader not sourced")
}

func TestTroubleshootSearchCmd(t *testing.T) {
	engine := newStubEngine()
	root := NewRootCmd("test", newTestApp(engine))

	_, err := execute(root, "troubleshoot", "search", "command", "not", "found")

	require.NoError(t, err)
	assert.Equal(t, "troubleshooting command not found", engine.lastQuery)
}

func TestContextCmd(t *testing.T) {
	engine := newStubEngine()
	engine.searchResp = &internal.SearchResponse{Results: []internal.MemoryRecord{
		{ID: "c1", Memory: "nvim change(plugin) -> lazy.nvim", Score: 0.77},
	}}
	root := NewRootCmd("test", newTestApp(engine))

	out, err := execute(root, "context", "nvim")

	require.NoError(t, err)
	assert.Equal(t, "nvim configuration preferences changes context", engine.lastQuery)
	assert.Contains(t, out, "lazy.nvim")
}

func TestContextCmdEmpty(t *testing.T) {
	root := NewRootCmd("test", newTestApp(newStubEngine()))

	out, err := execute(root, "context", "kitty")

	require.NoError(t, err)
	assert.Contains(t, out, "No memories about kitty yet.")
}
