package main

import (
	"bytes"
	"context"

	"github.com/4thel00z/dotmem/internal"
	"github.com/spf13/cobra"
)

// stubEngine is an in-memory Engine for command tests.
type stubEngine struct {
	added      []string
	addedMeta  []internal.Metadata
	searchResp *internal.SearchResponse
	updated    map[string]string
	lastQuery  string
}

func newStubEngine() *stubEngine {
	return &stubEngine{updated: make(map[string]string)}
}

func (s *stubEngine) Add(ctx context.Context, text string, metadata internal.Metadata) (*internal.AddResult, error) {
	s.added = append(s.added, text)
	s.addedMeta = append(s.addedMeta, metadata)
	return &internal.AddResult{Results: []internal.MemoryEvent{{ID: "mem-1", Memory: text, Event: "ADD"}}}, nil
}

func (s *stubEngine) Search(ctx context.Context, query string, limit int) (*internal.SearchResponse, error) {
	s.lastQuery = query
	if s.searchResp == nil {
		return &internal.SearchResponse{}, nil
	}
	return s.searchResp, nil
}

func (s *stubEngine) Update(ctx context.Context, id, text string) error {
	s.updated[id] = text
	return nil
}

func (s *stubEngine) Close() error { return nil }

// newTestApp returns an app already wired to the stub engine, skipping
// config loading and engine setup.
func newTestApp(engine internal.Engine) *app {
	a := &app{ready: true}
	a.cfg = internal.DefaultConfig()
	a.manager = internal.NewManager(engine, nil, true, nil)
	a.tools = a.buildToolset(nil)
	return a
}

// execute runs cmd with args and returns its stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
