package main

import (
	"fmt"

	"github.com/4thel00z/dotmem/internal"
	"github.com/spf13/cobra"
)

func NewSysinfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sysinfo",
		Short: "Show the auto-detected system snapshot",
		Long:  `Print the system metadata init-baseline would record: OS, shell, editor, prompt engine, package manager.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meta := internal.DetectSystem()

			if jsonWanted(cmd) {
				return printJSON(cmd, meta)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "os:       %s\n", meta.OSVersion)
			fmt.Fprintf(out, "shell:    %s\n", meta.MainShell)
			fmt.Fprintf(out, "terminal: %s\n", meta.MainTerminalEmulator)
			fmt.Fprintf(out, "prompt:   %s\n", meta.MainPromptEngine)
			fmt.Fprintf(out, "editor:   %s\n", meta.MainEditor)
			fmt.Fprintf(out, "vcs:      %s\n", meta.VersionControl)
			fmt.Fprintf(out, "packages: %s\n", meta.PackageManager)
			fmt.Fprintf(out, "cpu:      %s\n", meta.CPU)
			return nil
		},
	}
}
