package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search memories by meaning",
		Args:  cobra.MinimumNArgs(1),
		RunE:  makeSearchRunner(a),
	}

	cmd.Flags().IntP("number", "n", 10, "Maximum results")
	return cmd
}

func makeSearchRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("number")

		resp, err := a.manager.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		return printRecords(cmd, resp.Results, "No matching memories.")
	}
}
