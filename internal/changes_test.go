package internal

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func testChange() AppChange {
	return AppChange{
		AppName:           "zsh",
		ChangeType:        "alias",
		Description:       "added gst as git status",
		Rationale:         "typed the full command eleven times a day",
		ImprovementMetric: "keystrokes saved",
	}
}

func TestChangeCommit(t *testing.T) {
	engine := newFakeEngine()
	svc := NewChangeService(NewManager(engine, nil, true, nil), nil)

	out, err := svc.Commit(context.Background(), testChange())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if out != "Success: memory mem-1 added" {
		t.Errorf("output = %q", out)
	}

	stored := engine.added[0]
	for _, want := range []string{
		"zsh change(alias) -> added gst as git status",
		"Why? typed the full command eleven times a day",
		"Improvement: keystrokes saved",
	} {
		if !strings.Contains(stored, want) {
			t.Errorf("stored change missing %q:\n%s", want, stored)
		}
	}
	if strings.Contains(stored, "VCS Commit") {
		t.Errorf("commit line present without an id:\n%s", stored)
	}
}

func TestChangeCommitWithVCSID(t *testing.T) {
	engine := newFakeEngine()
	svc := NewChangeService(NewManager(engine, nil, true, nil), nil)

	change := testChange()
	change.VCSCommitID = "abc123"
	if _, err := svc.Commit(context.Background(), change); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if !strings.Contains(engine.added[0], "VCS Commit: abc123") {
		t.Errorf("stored change missing vcs id:\n%s", engine.added[0])
	}
}

func TestChangeCommitValidation(t *testing.T) {
	svc := NewChangeService(NewManager(newFakeEngine(), nil, true, nil), nil)

	change := testChange()
	change.Rationale = ""
	if _, err := svc.Commit(context.Background(), change); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing rationale, got %v", err)
	}
}

func TestLifecycleDeprecate(t *testing.T) {
	engine := newFakeEngine()
	svc := NewLifecycleService(NewManager(engine, nil, true, nil), nil)

	old := AppConfig{AppName: "powerlevel10k"}
	out, err := svc.Track(context.Background(), ActionDeprecate, old, nil, "no longer maintained")
	if err != nil {
		t.Fatalf("track: %v", err)
	}

	if !strings.Contains(out, "has been logged in memory") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(engine.added[0], "Lifecycle Event: DEPRECATE on powerlevel10k") {
		t.Errorf("stored event = %q", engine.added[0])
	}
	if engine.addedMeta[0]["type"] != TypeLifecycle {
		t.Errorf("metadata type = %q", engine.addedMeta[0]["type"])
	}
}

func TestLifecycleReplace(t *testing.T) {
	engine := newFakeEngine()
	svc := NewLifecycleService(NewManager(engine, nil, true, nil), nil)

	old := AppConfig{AppName: "powerlevel10k"}
	repl := AppConfig{AppName: "starship"}
	if _, err := svc.Track(context.Background(), ActionReplace, old, &repl, "faster and cross-shell"); err != nil {
		t.Fatalf("track: %v", err)
	}

	if !strings.Contains(engine.added[0], "Replaced by starship.") {
		t.Errorf("stored event = %q", engine.added[0])
	}
}

func TestLifecycleReplaceRequiresNewConfig(t *testing.T) {
	svc := NewLifecycleService(NewManager(newFakeEngine(), nil, true, nil), nil)

	old := AppConfig{AppName: "vim"}
	if _, err := svc.Track(context.Background(), ActionReplace, old, nil, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLifecycleUnknownAction(t *testing.T) {
	svc := NewLifecycleService(NewManager(newFakeEngine(), nil, true, nil), nil)

	old := AppConfig{AppName: "vim"}
	if _, err := svc.Track(context.Background(), "ARCHIVE", old, nil, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
