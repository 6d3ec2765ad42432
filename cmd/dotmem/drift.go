package main

import (
	"fmt"

	"github.com/4thel00z/dotmem/internal"
	"github.com/spf13/cobra"
)

func NewDriftCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drift-check",
		Short: "Compare the dotfiles directory against its committed state",
		Long:  `Detect uncommitted configuration changes. Drift reports are stored in memory so later sessions know about them.`,
		Args:  cobra.NoArgs,
		RunE:  makeDriftRunner(a),
	}
}

func makeDriftRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		result := a.tools.Drift.Check(cmd.Context())

		if jsonWanted(cmd) {
			return printJSON(cmd, result)
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		if result.Status == internal.DriftModified {
			fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) changed\n", result.TotalChanges)
		}
		return nil
	}
}
