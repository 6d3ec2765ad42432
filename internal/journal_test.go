package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenJournalInitializes(t *testing.T) {
	dir := t.TempDir()

	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	entries, err := j.Log(context.Background(), 0)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 commit after init, got %d", len(entries))
	}
	if entries[0].Message != "init: journal" {
		t.Errorf("init message = %q", entries[0].Message)
	}
}

func TestOpenJournalReopens(t *testing.T) {
	dir := t.TempDir()

	if _, err := OpenJournal(dir); err != nil {
		t.Fatalf("first open: %v", err)
	}
	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}

	entries, err := j.Log(context.Background(), 0)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("reopen created extra commits: %d", len(entries))
	}
}

func TestJournalRecord(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	id := "0123456789abcdef"
	if err := j.Record(ctx, id, TypeChange, "switched zsh prompt to starship"); err != nil {
		t.Fatalf("record: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "by-type", TypeChange, id+".md"))
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if !strings.Contains(string(data), "starship") {
		t.Errorf("entry content = %q", data)
	}

	entries, err := j.Log(ctx, 1)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if want := "memory: add change 01234567"; entries[0].Message != want {
		t.Errorf("commit message = %q, want %q", entries[0].Message, want)
	}
}

func TestJournalRecordDefaultsType(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := j.Record(context.Background(), "abc", "", "untyped note"); err != nil {
		t.Fatalf("record: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "by-type", TypeNote, "abc.md")); err != nil {
		t.Errorf("entry not filed under note: %v", err)
	}
}

func TestJournalRewrite(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	id := "feedface00000000"
	if err := j.Record(ctx, id, TypeRoadmap, "try fish shell"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := j.Rewrite(ctx, id, "try fish shell, blocked on plugin parity"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "by-type", TypeRoadmap, id+".md"))
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if !strings.Contains(string(data), "plugin parity") {
		t.Errorf("rewrite content = %q", data)
	}

	entries, err := j.Log(ctx, 1)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.HasPrefix(entries[0].Message, "memory: rewrite feedface") {
		t.Errorf("commit message = %q", entries[0].Message)
	}
	if !strings.Contains(entries[0].Message, "+") || !strings.Contains(entries[0].Message, "-") {
		t.Errorf("commit message missing diff stat: %q", entries[0].Message)
	}
}

func TestJournalRewriteMissingEntry(t *testing.T) {
	j, err := OpenJournal(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := j.Rewrite(context.Background(), "no-such-id", "text"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJournalLogLimit(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	for _, id := range []string{"a1", "b2", "c3"} {
		if err := j.Record(ctx, id, TypeNote, "entry "+id); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	entries, err := j.Log(ctx, 2)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "memory: add note c3" {
		t.Errorf("newest first violated: %q", entries[0].Message)
	}
}

func TestDiffStat(t *testing.T) {
	if got := diffStat("abc", "abcdef"); got != "+3 -0" {
		t.Errorf("diffStat = %q, want +3 -0", got)
	}
	if got := diffStat("hello world", "hello"); got != "+0 -6" {
		t.Errorf("diffStat = %q, want +0 -6", got)
	}
}
