package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewTrialCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trial",
		Short: "Track tools installed on probation",
	}

	cmd.AddCommand(newTrialStartCmd(a), newTrialListCmd(a))
	return cmd
}

func newTrialStartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <name>",
		Short: "Begin an evaluation period for a tool",
		Args:  cobra.ExactArgs(1),
		RunE:  makeTrialStartRunner(a),
	}

	cmd.Flags().IntP("days", "d", 14, "Evaluation duration in days")
	cmd.Flags().String("criteria", "", "What makes the trial a success")
	return cmd
}

func makeTrialStartRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		days, _ := cmd.Flags().GetInt("days")
		criteria, _ := cmd.Flags().GetString("criteria")

		out, err := a.tools.Trial.Start(cmd.Context(), args[0], days, criteria)
		if err != nil {
			return fmt.Errorf("start trial: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}

func newTrialListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show tools currently on trial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}

			minDays, _ := cmd.Flags().GetInt("min-days")

			records, err := a.tools.Trial.ListActive(cmd.Context(), minDays)
			if err != nil {
				return fmt.Errorf("list trials: %w", err)
			}

			return printRecords(cmd, records, "No active trials.")
		},
	}

	cmd.Flags().Int("min-days", 0, "Minimum days a trial has been running")
	return cmd
}
