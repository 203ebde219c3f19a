package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "presets",
		Short: "List the board presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tWIDTH\tHEIGHT\tMINES")
			for _, p := range mines.Presets {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", p.Name, p.Width, p.Height, p.MineCount)
			}
			return w.Flush()
		},
	})
}
