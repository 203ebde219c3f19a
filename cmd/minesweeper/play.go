package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/terminal"
)

var (
	presetName string
	params     mines.GameParams
	seed       uint64
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play a game in the terminal.

Commands, one per line, rows and columns count from 0:
  o ROW COL  reveal a cell
  f ROW COL  toggle a flag
  c ROW COL  reveal around a satisfied number
  g          show the board
  q          quit`,
		Args: cobra.NoArgs,
		RunE: runPlay,
	}

	playCmd.Flags().StringVarP(&presetName, "preset", "p", "", "Preset name, see the presets command")
	playCmd.Flags().IntVar(&params.Width, "width", 0, "Board width")
	playCmd.Flags().IntVar(&params.Height, "height", 0, "Board height")
	playCmd.Flags().IntVarP(&params.MineCount, "mines", "m", 0, "Number of mines")
	playCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible board")
	playCmd.MarkFlagsRequiredTogether("width", "height", "mines")
	playCmd.MarkFlagsMutuallyExclusive("preset", "width")

	rootCmd.AddCommand(playCmd)
}

func gameParams(cmd *cobra.Command) (mines.GameParams, error) {
	if cmd.Flags().Changed("width") {
		return params, nil
	}
	name := presetName
	if name == "" {
		name = mines.Presets[0].Name
	}
	preset, ok := mines.PresetByName(name)
	if !ok {
		return mines.GameParams{}, fmt.Errorf("unknown preset %q", name)
	}
	return preset.GameParams, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	p, err := gameParams(cmd)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	log.SetOutput(cmd.ErrOrStderr())
	mines.Log = log

	var rnd *rand.Rand
	if cmd.Flags().Changed("seed") {
		rnd = rand.New(rand.NewPCG(seed, seed))
	}
	b, err := mines.NewFromParams(p, rnd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "%dx%d, %d mines\n", p.Width, p.Height, p.MineCount)
	return terminal.New(log, b, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}
