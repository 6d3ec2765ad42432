package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/4thel00z/dotmem/internal"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func NewWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the dotfiles directory and report drift on change",
		Long:  `Watch the dotfiles repository for file changes and run a drift check after each burst of edits.`,
		Args:  cobra.NoArgs,
		RunE:  makeWatchRunner(a),
	}

	cmd.Flags().Duration("debounce", 2*time.Second, "Debounce window for batching changes")
	return cmd
}

func makeWatchRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		debounce, _ := cmd.Flags().GetDuration("debounce")

		dir := a.cfg.DotfilesDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			dir = cwd
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := addWatchDirs(watcher, dir); err != nil {
			return fmt.Errorf("add watch dirs: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", dir)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldIgnoreEvent(event) {
					continue
				}
				if !pending {
					timer.Reset(debounce)
					pending = true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			case <-timer.C:
				pending = false
				result := a.tools.Drift.Check(cmd.Context())
				if result.Status == internal.DriftModified {
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] drift: %d file(s) changed\n",
						time.Now().Format("15:04:05"), result.TotalChanges)
				}
			}
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			base := filepath.Base(path)
			if strings.HasPrefix(base, ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

func shouldIgnoreEvent(event fsnotify.Event) bool {
	// VCS bookkeeping churns constantly; dotfiles themselves are watched.
	sep := string(filepath.Separator)
	for _, vcsDir := range []string{sep + ".git" + sep, sep + ".jj" + sep} {
		if strings.Contains(event.Name, vcsDir) {
			return true
		}
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0
}
