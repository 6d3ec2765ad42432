package internal

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTroubleshootLog(t *testing.T) {
	engine := newFakeEngine()
	svc := NewTroubleshootService(NewManager(engine, nil, true, nil), nil)

	out, err := svc.Log(context.Background(),
		"zsh: command not found: nvm",
		"nvm loader not sourced in .zshrc",
		"add 'source ~/.nvm/nvm.sh' before the plugin block")
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	if out != "Troubleshooting Knowledge Base Updated. Added: zsh: command not found: nvm" {
		t.Errorf("output = %q", out)
	}

	stored := engine.added[0]
	for _, want := range []string{
		"Troubleshooting: zsh: command not found: nvm",
		"Cause: nvm loader not sourced",
		"Fix: add 'source ~/.nvm/nvm.sh'",
	} {
		if !strings.Contains(stored, want) {
			t.Errorf("stored entry missing %q:\n%s", want, stored)
		}
	}
	if engine.addedMeta[0]["type"] != TypeTroubleshoot {
		t.Errorf("metadata type = %q", engine.addedMeta[0]["type"])
	}
}

func TestTroubleshootLogRequiresSignature(t *testing.T) {
	svc := NewTroubleshootService(NewManager(newFakeEngine(), nil, true, nil), nil)

	if _, err := svc.Log(context.Background(), "", "c", "f"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTroubleshootGuide(t *testing.T) {
	engine := newFakeEngine()
	engine.searchResp = &SearchResponse{Results: []MemoryRecord{
		{ID: "k1", Memory: "Troubleshooting: zsh: command not found: nvm"},
	}}
	svc := NewTroubleshootService(NewManager(engine, nil, true, nil), nil)

	records, err := svc.Guide(context.Background(), "command not found")
	if err != nil {
		t.Fatalf("guide: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if engine.lastQuery != "troubleshooting command not found" {
		t.Errorf("query = %q", engine.lastQuery)
	}
}
