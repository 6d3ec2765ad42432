package main

import (
	"fmt"
	"io"

	"github.com/4thel00z/dotmem/internal"
	"github.com/spf13/cobra"
)

func NewRememberCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remember [text]",
		Short: "Store a free-form note",
		Long:  `Store an untyped note in memory. Reads from stdin when no text is given. Secrets are redacted before storage.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  makeRememberRunner(a),
	}

	cmd.Flags().StringP("tag", "t", "", "Extra metadata tag")
	return cmd
}

func makeRememberRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		text, err := resolveText(cmd, args)
		if err != nil {
			return err
		}
		if text == "" {
			return fmt.Errorf("nothing to remember")
		}

		metadata := internal.Metadata{"type": internal.TypeNote}
		if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
			metadata["tag"] = tag
		}

		result, err := a.manager.AddWithRedaction(cmd.Context(), text, metadata)
		if err != nil {
			return fmt.Errorf("remember: %w", err)
		}

		if jsonWanted(cmd) {
			return printJSON(cmd, result)
		}

		for _, ev := range result.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "Remembered %s\n", ev.ID)
		}
		return nil
	}
}

func resolveText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) >= 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
