package main

import (
	"github.com/phanxgames/sway/game"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play the script in a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		scene, err := buildScene(cfg)
		if err != nil {
			return err
		}
		var update func() error
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			// the loop is owned by whichever goroutine ebiten ticks on
			update = func() error {
				scene.SetDebugMode(true)
				update = nil
				return nil
			}
		}
		return game.Run(scene, cfg.Window, func() error {
			if update != nil {
				return update()
			}
			return nil
		})
	},
}

func init() {
	windowCmd.Flags().Bool("debug", false, "Enable scene debug mode")
	rootCmd.AddCommand(windowCmd)
}
