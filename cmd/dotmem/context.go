package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewContextCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context <app>",
		Short: "Show everything remembered about an app",
		Long:  `Retrieve past changes, preferences and fixes for a specific app, for example zsh or nvim.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeContextRunner(a),
	}

	cmd.Flags().BoolP("summarize", "s", false, "Condense the context through the LLM")
	return cmd
}

func makeContextRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}
		appName := args[0]

		summarize, _ := cmd.Flags().GetBool("summarize")
		if summarize {
			return runSummarizedContext(cmd, a, appName)
		}

		records, err := a.tools.Query.Context(cmd.Context(), appName)
		if err != nil {
			return fmt.Errorf("get context: %w", err)
		}

		if jsonWanted(cmd) {
			return printJSON(cmd, records)
		}

		if len(records) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No memories about %s yet.\n", appName)
			return nil
		}
		for _, rec := range records {
			fmt.Fprintf(cmd.OutOrStdout(), "[%.2f] %s\n", rec.Score, rec.Memory)
		}
		return nil
	}
}

func runSummarizedContext(cmd *cobra.Command, a *app, appName string) error {
	provider, err := a.provider(cmd.Context())
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	tools := a.buildToolset(provider)
	summary, err := tools.Query.Summarize(cmd.Context(), appName)
	if err != nil {
		return fmt.Errorf("summarize context: %w", err)
	}

	if jsonWanted(cmd) {
		return printJSON(cmd, summary)
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary.Overview)
	for _, fact := range summary.KeyFacts {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", fact)
	}
	if len(summary.OpenItems) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Open:")
		for _, item := range summary.OpenItems {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", item)
		}
	}
	return nil
}
