package main

import (
	"fmt"
	"strings"

	"github.com/4thel00z/dotmem/internal"
	"github.com/spf13/cobra"
)

func NewLifecycleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifecycle <action> <app>",
		Short: "Record a tool being deprecated or replaced",
		Long:  `Track DEPRECATE and REPLACE events so abandoned tools are never suggested again.`,
		Args:  cobra.ExactArgs(2),
		RunE:  makeLifecycleRunner(a),
	}

	cmd.Flags().String("replacement", "", "App that replaces the old one (REPLACE only)")
	cmd.Flags().String("logic", "", "Reasoning behind the transition")
	return cmd
}

func makeLifecycleRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}

		action := internal.LifecycleAction(strings.ToUpper(args[0]))
		oldConfig := internal.AppConfig{AppName: args[1]}

		replacement, _ := cmd.Flags().GetString("replacement")
		logic, _ := cmd.Flags().GetString("logic")

		var newConfig *internal.AppConfig
		if replacement != "" {
			newConfig = &internal.AppConfig{AppName: replacement}
		}

		out, err := a.tools.Lifecycle.Track(cmd.Context(), action, oldConfig, newConfig, logic)
		if err != nil {
			return fmt.Errorf("track lifecycle: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}
