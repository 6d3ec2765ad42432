package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDetectVCSGit(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	vcs, err := DetectVCS(dir, time.Second)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if vcs.Type != VCSGit {
		t.Errorf("type = %q, want git", vcs.Type)
	}
}

func TestDetectVCSPrefersJJ(t *testing.T) {
	dir := t.TempDir()
	for _, marker := range []string{".git", ".jj"} {
		if err := os.Mkdir(filepath.Join(dir, marker), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", marker, err)
		}
	}

	vcs, err := DetectVCS(dir, time.Second)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if vcs.Type != VCSJJ {
		t.Errorf("colocated repo should detect as jj, got %q", vcs.Type)
	}
}

func TestDetectVCSWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	nested := filepath.Join(root, "configs", "nvim")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	vcs, err := DetectVCS(nested, time.Second)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if vcs.Type != VCSGit {
		t.Errorf("type = %q, want git", vcs.Type)
	}
}

func TestDetectVCSNoRepo(t *testing.T) {
	_, err := DetectVCS(t.TempDir(), time.Second)
	if !errors.Is(err, ErrNoVCS) {
		t.Errorf("expected ErrNoVCS, got %v", err)
	}
}

func TestVCSStatusCommands(t *testing.T) {
	var gotName string
	var gotArgs []string

	vcs := &VCS{Type: VCSGit, Dir: "/tmp", run: func(ctx context.Context, dir, name string, args ...string) (string, error) {
		gotName = name
		gotArgs = args
		return " M .zshrc\n", nil
	}}

	out, err := vcs.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if out != " M .zshrc\n" {
		t.Errorf("output = %q", out)
	}
	if gotName != "git" || !reflect.DeepEqual(gotArgs, []string{"status", "--porcelain"}) {
		t.Errorf("ran %s %v", gotName, gotArgs)
	}

	vcs.Type = VCSJJ
	if _, err := vcs.Status(context.Background()); err != nil {
		t.Fatalf("status: %v", err)
	}
	if gotName != "jj" || !reflect.DeepEqual(gotArgs, []string{"st"}) {
		t.Errorf("ran %s %v", gotName, gotArgs)
	}
}

func TestVCSLogCommands(t *testing.T) {
	var gotName string
	var gotArgs []string

	vcs := &VCS{Type: VCSGit, Dir: "/tmp", run: func(ctx context.Context, dir, name string, args ...string) (string, error) {
		gotName = name
		gotArgs = args
		return "abc123 initial\n", nil
	}}

	if _, err := vcs.Log(context.Background(), 5); err != nil {
		t.Fatalf("log: %v", err)
	}
	if gotName != "git" || !reflect.DeepEqual(gotArgs, []string{"log", "--oneline", "-n", "5"}) {
		t.Errorf("ran %s %v", gotName, gotArgs)
	}

	// zero falls back to the default window
	if _, err := vcs.Log(context.Background(), 0); err != nil {
		t.Fatalf("log: %v", err)
	}
	if !reflect.DeepEqual(gotArgs, []string{"log", "--oneline", "-n", "20"}) {
		t.Errorf("default count args = %v", gotArgs)
	}

	vcs.Type = VCSJJ
	if _, err := vcs.Log(context.Background(), 7); err != nil {
		t.Fatalf("log: %v", err)
	}
	if gotName != "jj" || !reflect.DeepEqual(gotArgs, []string{"log", "--limit", "7", "--no-graph"}) {
		t.Errorf("ran %s %v", gotName, gotArgs)
	}
}

func TestVCSTimeoutApplied(t *testing.T) {
	vcs := &VCS{Type: VCSGit, Timeout: time.Second, run: func(ctx context.Context, dir, name string, args ...string) (string, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected a deadline on the command context")
		}
		return "", nil
	}}

	if _, err := vcs.Status(context.Background()); err != nil {
		t.Fatalf("status: %v", err)
	}
}

func TestModifiedFiles(t *testing.T) {
	out := " M .zshrc\n?? scripts/new.sh\n\n A nvim/init.lua\n"
	files := ModifiedFiles(out)

	want := []string{"M .zshrc", "?? scripts/new.sh", "A nvim/init.lua"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}

	if got := ModifiedFiles(""); got != nil {
		t.Errorf("empty status produced %v", got)
	}
}
