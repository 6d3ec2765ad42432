package main

import (
	"fmt"
	"strings"

	"github.com/4thel00z/dotmem/internal"
	"github.com/spf13/cobra"
)

func NewRoadmapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Track future ideas and nice-to-haves",
	}

	cmd.AddCommand(newRoadmapAddCmd(a), newRoadmapListCmd(a))
	return cmd
}

func newRoadmapAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Save a roadmap idea",
		Args:  cobra.ExactArgs(1),
		RunE:  makeRoadmapAddRunner(a),
	}

	cmd.Flags().String("hypothesis", "", "Expected implementation and benefit")
	cmd.Flags().String("blockers", "", "What prevents acting now")
	cmd.Flags().StringP("priority", "p", "MEDIUM", "LOW, MEDIUM or HIGH")
	return cmd
}

func makeRoadmapAddRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		hypothesis, _ := cmd.Flags().GetString("hypothesis")
		blockers, _ := cmd.Flags().GetString("blockers")
		priority, _ := cmd.Flags().GetString("priority")

		out, err := a.tools.Roadmap.Log(cmd.Context(), args[0], hypothesis, blockers,
			internal.Priority(strings.ToUpper(priority)))
		if err != nil {
			return fmt.Errorf("save roadmap entry: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}

func newRoadmapListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Retrieve roadmap ideas",
		Args:  cobra.NoArgs,
		RunE:  makeRoadmapListRunner(a),
	}

	cmd.Flags().String("status", "pending", "pending or blocked")
	cmd.Flags().StringP("priority", "p", "", "Filter by priority")
	return cmd
}

func makeRoadmapListRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")

		records, err := a.tools.Roadmap.Query(cmd.Context(), status,
			internal.Priority(strings.ToUpper(priority)))
		if err != nil {
			return fmt.Errorf("query roadmap: %w", err)
		}

		return printRecords(cmd, records, "No roadmap entries found.")
	}
}

// printRecords renders search results as JSON or a score-prefixed list.
func printRecords(cmd *cobra.Command, records []internal.MemoryRecord, emptyMsg string) error {
	if jsonWanted(cmd) {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), emptyMsg)
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "[%.2f] %s\n", rec.Score, rec.Memory)
	}
	return nil
}
