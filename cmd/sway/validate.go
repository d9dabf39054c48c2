package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config and script for consistency",
	Long:  `Loads the config, builds the scene and checks that every script step refers to a declared node.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if _, err := buildScene(cfg); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		steps := 0
		if cfg.Script != nil {
			steps = len(cfg.Script.Steps)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config is valid: %d nodes, %d script steps\n", len(cfg.Nodes), steps)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
