package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/4thel00z/dotmem/internal"
	"github.com/spf13/cobra"
)

func NewBaselineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-baseline <manager>",
		Short: "Record the ground truth for this machine",
		Long:  `Store the dotfiles manager, the managed configurations and a system snapshot as the baseline memory. The system snapshot is auto-detected.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeBaselineRunner(a),
	}

	cmd.Flags().String("configs", "", "JSON file describing the managed configurations")
	return cmd
}

func makeBaselineRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}
		managerName := args[0]

		configsPath, _ := cmd.Flags().GetString("configs")
		configs, err := loadConfigMap(configsPath)
		if err != nil {
			return err
		}

		meta := internal.DetectSystem()

		out, err := a.tools.Baseline.Initialize(cmd.Context(), managerName, configs, meta)
		if err != nil {
			return fmt.Errorf("init baseline: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}

func loadConfigMap(path string) ([]internal.AppConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configs: %w", err)
	}

	var configs []internal.AppConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("parse configs: %w", err)
	}
	return configs, nil
}
