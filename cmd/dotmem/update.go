package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <memory-id> <text>",
		Short: "Correct an existing memory",
		Args:  cobra.ExactArgs(2),
		RunE:  makeUpdateRunner(a),
	}
}

func makeUpdateRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		out, err := a.tools.Update.Rewrite(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("update memory: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}
