package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dotmem",
		Short:         "Semantic memory for dotfiles maintenance",
		Long:          `Persistent, searchable memory about a dotfiles environment: what changed, why, what broke and how it was fixed.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if a == nil {
				return
			}
			a.dotfilesDir, _ = cmd.Flags().GetString("dotfiles")
			a.verbose, _ = cmd.Flags().GetBool("verbose")
		},
	}

	addPersistentFlags(rootCmd)

	if a != nil {
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("dotfiles", "", "Dotfiles repository directory")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewBaselineCmd(a),
		NewDriftCmd(a),
		NewContextCmd(a),
		NewHistoryCmd(a),
		NewChangeCmd(a),
		NewLifecycleCmd(a),
		NewRoadmapCmd(a),
		NewTrialCmd(a),
		NewTroubleshootCmd(a),
		NewRememberCmd(a),
		NewSearchCmd(a),
		NewUpdateCmd(a),
		NewSysinfoCmd(),
		NewJournalCmd(a),
		NewWatchCmd(a),
		NewAgentCmd(a),
	)
}

// printJSON writes v indented to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func jsonWanted(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}
