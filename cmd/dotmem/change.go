package main

import (
	"fmt"

	"github.com/4thel00z/dotmem/internal"
	"github.com/spf13/cobra"
)

func NewChangeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change <app>",
		Short: "Record a configuration change and its rationale",
		Long:  `Store the WHAT and the WHY of a configuration change, so future sessions understand the intent behind the diff.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeChangeRunner(a),
	}

	cmd.Flags().StringP("type", "t", "", "Kind of change (alias, keybinding, plugin, setting)")
	cmd.Flags().StringP("description", "d", "", "What changed")
	cmd.Flags().StringP("why", "w", "", "Why it changed")
	cmd.Flags().String("improves", "", "What the change improves")
	cmd.Flags().String("commit", "", "VCS commit id to link")
	return cmd
}

func makeChangeRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		changeType, _ := cmd.Flags().GetString("type")
		description, _ := cmd.Flags().GetString("description")
		rationale, _ := cmd.Flags().GetString("why")
		improves, _ := cmd.Flags().GetString("improves")
		commitID, _ := cmd.Flags().GetString("commit")

		change := internal.AppChange{
			AppName:           args[0],
			ChangeType:        changeType,
			Description:       description,
			Rationale:         rationale,
			ImprovementMetric: improves,
			VCSCommitID:       commitID,
		}

		out, err := a.tools.Change.Commit(cmd.Context(), change)
		if err != nil {
			return fmt.Errorf("record change: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}
