package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/sway"
	"github.com/phanxgames/sway/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sway",
	Short: "Sway plays property animations on a node scene",
	Long: `Sway builds a scene of nodes from a YAML config and plays its animation
script, either in a window or as a stream of frame snapshots over MQTT.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "sway.yaml", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config")
}

// setup loads the config named by --config and installs the logger.
func setup(cmd *cobra.Command) (Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfigFile(path)
	if err != nil {
		return Config{}, err
	}
	level := cfg.Log.Level
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level = flag
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return Config{}, err
	}
	sway.SetLogger(logging.New(lvl))
	return cfg, nil
}
