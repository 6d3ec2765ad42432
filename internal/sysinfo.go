package internal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// DetectSystem collects a best-effort SystemMetadata snapshot from the
// running machine. Every field degrades to a sensible fallback; nothing
// here errors.
func DetectSystem() SystemMetadata {
	return SystemMetadata{
		OSVersion:            detectOS(),
		MainShell:            basenameOrDefault(os.Getenv("SHELL"), "unknown"),
		MainTerminalEmulator: detectTerminal(),
		MainPromptEngine:     detectPromptEngine(),
		MainEditor:           detectEditor(),
		VersionControl:       detectVCSBinary(),
		PackageManager:       detectPackageManager(),
		CPU:                  fmt.Sprintf("%s (%d cores)", runtime.GOARCH, runtime.NumCPU()),
	}
}

func detectOS() string {
	out, err := exec.Command("uname", "-sr").Output()
	if err != nil {
		return runtime.GOOS
	}
	return strings.TrimSpace(string(out))
}

func detectTerminal() string {
	if v := os.Getenv("TERM_PROGRAM"); v != "" {
		return v
	}
	return os.Getenv("TERM")
}

func detectPromptEngine() string {
	for _, name := range []string{"starship", "oh-my-posh"} {
		if _, err := exec.LookPath(name); err == nil {
			return name
		}
	}
	return "none"
}

func detectEditor() string {
	if v := os.Getenv("EDITOR"); v != "" {
		return filepath.Base(v)
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return filepath.Base(v)
	}
	return "unknown"
}

func detectVCSBinary() string {
	if _, err := exec.LookPath("jj"); err == nil {
		return "jj"
	}
	if _, err := exec.LookPath("git"); err == nil {
		return "git"
	}
	return "none"
}

func detectPackageManager() string {
	for _, name := range []string{"brew", "apt", "pacman", "dnf", "nix-env", "zypper"} {
		if _, err := exec.LookPath(name); err == nil {
			return name
		}
	}
	return "unknown"
}

func basenameOrDefault(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return filepath.Base(path)
}
