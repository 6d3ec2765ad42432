package internal

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type VCSType string

const (
	VCSGit VCSType = "git"
	VCSJJ  VCSType = "jj"
)

// CommandRunner executes a VCS binary and returns its stdout. Swapped
// out in tests.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) (string, error)

// VCS is the subprocess interface to the version control system backing
// the dotfiles directory.
type VCS struct {
	Type    VCSType
	Dir     string
	Timeout time.Duration

	run CommandRunner
}

// DetectVCS inspects dir for a repository marker. jj wins over git when
// both are present (colocated repos keep .git around).
func DetectVCS(dir string, timeout time.Duration) (*VCS, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = cwd
	}

	vcsType, ok := findVCSMarker(dir)
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrNoVCS, dir)
	}

	return &VCS{
		Type:    vcsType,
		Dir:     dir,
		Timeout: timeout,
		run:     runCommand,
	}, nil
}

func findVCSMarker(dir string) (VCSType, bool) {
	for {
		if info, err := os.Stat(filepath.Join(dir, ".jj")); err == nil && info.IsDir() {
			return VCSJJ, true
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return VCSGit, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Status returns the porcelain status output. Empty output means the
// worktree matches the committed state.
func (v *VCS) Status(ctx context.Context) (string, error) {
	ctx, cancel := v.withTimeout(ctx)
	defer cancel()

	switch v.Type {
	case VCSJJ:
		return v.run(ctx, v.Dir, "jj", "st")
	default:
		return v.run(ctx, v.Dir, "git", "status", "--porcelain")
	}
}

// Log returns the last count commit summaries.
func (v *VCS) Log(ctx context.Context, count int) (string, error) {
	if count <= 0 {
		count = 20
	}

	ctx, cancel := v.withTimeout(ctx)
	defer cancel()

	switch v.Type {
	case VCSJJ:
		return v.run(ctx, v.Dir, "jj", "log", "--limit", strconv.Itoa(count), "--no-graph")
	default:
		return v.run(ctx, v.Dir, "git", "log", "--oneline", "-n", strconv.Itoa(count))
	}
}

// ModifiedFiles parses Status output into one entry per changed path.
func ModifiedFiles(statusOutput string) []string {
	var files []string
	for _, line := range strings.Split(statusOutput, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}

func (v *VCS) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if v.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, v.Timeout)
}

func runCommand(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), msg)
	}

	return stdout.String(), nil
}
