package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewTroubleshootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "troubleshoot",
		Short: "Knowledge base of errors and verified fixes",
	}

	cmd.AddCommand(newTroubleshootLogCmd(a), newTroubleshootSearchCmd(a))
	return cmd
}

func newTroubleshootLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <error-signature>",
		Short: "Record a fix that worked",
		Args:  cobra.ExactArgs(1),
		RunE:  makeTroubleshootLogRunner(a),
	}

	cmd.Flags().String("cause", "", "Root cause of the failure")
	cmd.Flags().String("fix", "", "Steps that resolved it")
	return cmd
}

func makeTroubleshootLogRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		cause, _ := cmd.Flags().GetString("cause")
		fix, _ := cmd.Flags().GetString("fix")

		out, err := a.tools.Troubleshoot.Log(cmd.Context(), args[0], cause, fix)
		if err != nil {
			return fmt.Errorf("log troubleshooting entry: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}

func newTroubleshootSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>...",
		Short: "Look up past fixes for a similar error",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}

			records, err := a.tools.Troubleshoot.Guide(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("search troubleshooting logs: %w", err)
			}

			return printRecords(cmd, records, "No matching fixes recorded.")
		},
	}
}
