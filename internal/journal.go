package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	journalBranch = "main"
	journalAuthor = "dotmem"
	journalEmail  = "dotmem@local"
)

// Journal is a git-backed plain-text audit trail of every memory write.
// The vector store owns retrieval; the journal answers "what exactly was
// stored, and when".
type Journal struct {
	repo     *git.Repository
	worktree *git.Worktree
	rootPath string
}

type JournalEntry struct {
	Hash      string
	Message   string
	Timestamp time.Time
}

// OpenJournal opens the journal at path, initializing it on first use.
func OpenJournal(path string) (*Journal, error) {
	gitDir := filepath.Join(path, ".git")

	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return initJournal(path, gitDir)
	}

	fs := osfs.New(gitDir)
	storage := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())
	wt := osfs.New(path)

	repo, err := git.Open(storage, wt)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}

	return &Journal{repo: repo, worktree: worktree, rootPath: path}, nil
}

func initJournal(path, gitDir string) (*Journal, error) {
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	fs := osfs.New(gitDir)
	storage := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())
	wt := osfs.New(path)

	repo, err := git.Init(storage, wt)
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	cfg.Init.DefaultBranch = journalBranch
	if err := repo.SetConfig(cfg); err != nil {
		return nil, fmt.Errorf("set config: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}

	markerPath := filepath.Join(path, ".dotmem-journal")
	if err := os.WriteFile(markerPath, []byte("dotmem journal\n"), 0644); err != nil {
		return nil, fmt.Errorf("write marker: %w", err)
	}

	if _, err := worktree.Add(".dotmem-journal"); err != nil {
		return nil, fmt.Errorf("stage marker: %w", err)
	}

	if _, err := worktree.Commit("init: journal", commitOptions()); err != nil {
		return nil, fmt.Errorf("initial commit: %w", err)
	}

	return &Journal{repo: repo, worktree: worktree, rootPath: path}, nil
}

// Record appends one memory write to the journal.
func (j *Journal) Record(ctx context.Context, id, memType, text string) error {
	if memType == "" {
		memType = TypeNote
	}

	relPath := filepath.Join("by-type", memType, id+".md")
	path := filepath.Join(j.rootPath, relPath)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create type directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}

	if _, err := j.worktree.Add(relPath); err != nil {
		return fmt.Errorf("stage entry: %w", err)
	}

	message := fmt.Sprintf("memory: add %s %s", memType, shortID(id))
	if _, err := j.worktree.Commit(message, commitOptions()); err != nil {
		return fmt.Errorf("commit entry: %w", err)
	}

	return nil
}

// Rewrite replaces an existing entry and commits with a diff stat of the
// old and new text.
func (j *Journal) Rewrite(ctx context.Context, id, newText string) error {
	matches, err := filepath.Glob(filepath.Join(j.rootPath, "by-type", "*", id+".md"))
	if err != nil || len(matches) == 0 {
		return ErrNotFound
	}
	path := matches[0]

	oldBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read entry: %w", err)
	}

	if err := os.WriteFile(path, []byte(newText+"\n"), 0644); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}

	relPath, err := filepath.Rel(j.rootPath, path)
	if err != nil {
		return fmt.Errorf("get relative path: %w", err)
	}

	if _, err := j.worktree.Add(relPath); err != nil {
		return fmt.Errorf("stage entry: %w", err)
	}

	stat := diffStat(string(oldBytes), newText)
	message := fmt.Sprintf("memory: rewrite %s (%s)", shortID(id), stat)
	if _, err := j.worktree.Commit(message, commitOptions()); err != nil {
		return fmt.Errorf("commit entry: %w", err)
	}

	return nil
}

// Log returns the most recent journal entries, newest first.
func (j *Journal) Log(ctx context.Context, limit int) ([]JournalEntry, error) {
	iter, err := j.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	var entries []JournalEntry
	count := 0

	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && count >= limit {
			return io.EOF
		}
		entries = append(entries, JournalEntry{
			Hash:      c.Hash.String(),
			Message:   strings.TrimSpace(c.Message),
			Timestamp: c.Author.When,
		})
		count++
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, err
	}

	return entries, nil
}

func commitOptions() *git.CommitOptions {
	return &git.CommitOptions{
		Author: &object.Signature{
			Name:  journalAuthor,
			Email: journalEmail,
			When:  time.Now(),
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// diffStat summarizes the character delta between two texts.
func diffStat(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)

	var inserted, deleted int
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(d.Text)
		}
	}

	return fmt.Sprintf("+%d -%d", inserted, deleted)
}
