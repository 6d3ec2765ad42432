package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewJournalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show the audit trail of memory writes",
		Args:  cobra.NoArgs,
		RunE:  makeJournalRunner(a),
	}

	cmd.Flags().IntP("number", "n", 20, "Maximum entries")
	return cmd
}

func makeJournalRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := a.setup(); err != nil {
			return err
		}
		if a.journal == nil {
			return fmt.Errorf("journal is disabled")
		}

		limit, _ := cmd.Flags().GetInt("number")

		entries, err := a.journal.Log(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}

		if jsonWanted(cmd) {
			return printJSON(cmd, entries)
		}

		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				e.Hash[:7], e.Timestamp.Format("2006-01-02 15:04"), e.Message)
		}
		return nil
	}
}
