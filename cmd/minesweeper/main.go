package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Minesweeper game engine, server and terminal player",
	Long: `Minesweeper game engine.

Examples:
  minesweeper serve -c config.toml
  minesweeper play --preset medium
  minesweeper play --width 9 --height 9 --mines 10 --seed 42`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
