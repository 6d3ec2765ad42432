package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest-history",
		Short: "Backfill memory from the dotfiles commit log",
		Args:  cobra.NoArgs,
		RunE:  makeHistoryRunner(a),
	}

	cmd.Flags().IntP("number", "n", 20, "Number of commits to ingest")
	return cmd
}

func makeHistoryRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("number")

		out, err := a.tools.History.Ingest(cmd.Context(), count)
		if err != nil {
			return fmt.Errorf("ingest history: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}
