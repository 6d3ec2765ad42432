package v1

import (
	"context"
	"strings"
	"testing"

	"github.com/4thel00z/dotmem/internal"
)

// memEngine is an in-memory Engine so client tests never open a real
// vector store.
type memEngine struct {
	texts map[string]string
	meta  map[string]internal.Metadata
	next  int
}

func newMemEngine() *memEngine {
	return &memEngine{texts: make(map[string]string), meta: make(map[string]internal.Metadata)}
}

func (m *memEngine) Add(ctx context.Context, text string, metadata internal.Metadata) (*internal.AddResult, error) {
	m.next++
	id := "mem-" + string(rune('0'+m.next))
	m.texts[id] = text
	m.meta[id] = metadata
	return &internal.AddResult{Results: []internal.MemoryEvent{{ID: id, Memory: text, Event: "ADD"}}}, nil
}

func (m *memEngine) Search(ctx context.Context, query string, limit int) (*internal.SearchResponse, error) {
	resp := &internal.SearchResponse{}
	for id, text := range m.texts {
		resp.Results = append(resp.Results, internal.MemoryRecord{ID: id, Memory: text, Score: 0.5, Metadata: m.meta[id]})
		if len(resp.Results) >= limit {
			break
		}
	}
	return resp, nil
}

func (m *memEngine) Update(ctx context.Context, id, text string) error {
	if _, ok := m.texts[id]; !ok {
		return internal.ErrNotFound
	}
	m.texts[id] = text
	return nil
}

func (m *memEngine) Close() error { return nil }

func testClient(t *testing.T, engine internal.Engine) *Client {
	t.Helper()

	cfg := internal.DefaultConfig()
	cfg.DotfilesDir = t.TempDir()
	return newClient(cfg, internal.NewManager(engine, nil, true, nil))
}

func TestClientRememberAndSearch(t *testing.T) {
	engine := newMemEngine()
	client := testClient(t, engine)
	defer client.Close()
	ctx := context.Background()

	id, err := client.Remember(ctx, "prefers tmux over screen")
	if err != nil {
		t.Fatalf("remember: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}

	memories, err := client.Search(ctx, "terminal multiplexer", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(memories) != 1 {
		t.Fatalf("expected 1 memory, got %d", len(memories))
	}
	if memories[0].Content != "prefers tmux over screen" {
		t.Errorf("content = %q", memories[0].Content)
	}
}

func TestClientRememberRedacts(t *testing.T) {
	engine := newMemEngine()
	client := testClient(t, engine)
	defer client.Close()

	id, err := client.Remember(context.Background(), "key is sk-abcdef1234567890abcdef")
	if err != nil {
		t.Fatalf("remember: %v", err)
	}

	if strings.Contains(engine.texts[id], "sk-abcdef") {
		t.Errorf("secret stored verbatim: %q", engine.texts[id])
	}
}

func TestClientRecordChange(t *testing.T) {
	engine := newMemEngine()
	client := testClient(t, engine)
	defer client.Close()

	err := client.RecordChange(context.Background(), Change{
		App:         "zsh",
		Kind:        "alias",
		Description: "added gst",
		Rationale:   "saves keystrokes",
	})
	if err != nil {
		t.Fatalf("record change: %v", err)
	}

	if len(engine.texts) != 1 {
		t.Fatalf("expected 1 memory, got %d", len(engine.texts))
	}
}

func TestClientRecordChangeValidation(t *testing.T) {
	client := testClient(t, newMemEngine())
	defer client.Close()

	err := client.RecordChange(context.Background(), Change{App: "zsh"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestClientUpdate(t *testing.T) {
	engine := newMemEngine()
	client := testClient(t, engine)
	defer client.Close()
	ctx := context.Background()

	id, err := client.Remember(ctx, "editor is nvim")
	if err != nil {
		t.Fatalf("remember: %v", err)
	}

	if err := client.Update(ctx, id, "editor is helix"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if engine.texts[id] != "editor is helix" {
		t.Errorf("content = %q", engine.texts[id])
	}
}

func TestClientDriftCheckNoRepo(t *testing.T) {
	client := testClient(t, newMemEngine())
	defer client.Close()

	report := client.DriftCheck(context.Background())

	if report.Status != "error" {
		t.Errorf("status = %q, want error", report.Status)
	}
	if !strings.Contains(report.Message, "Error checking drift") {
		t.Errorf("message = %q", report.Message)
	}
}
