package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/logging"
)

var configPath string

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP and websockets",
		Long: `Serve games over HTTP and websockets.

The config file is JSON, or TOML when its name ends in .toml. MINES_*
environment variables override values from the file.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg)
	if err != nil {
		return err
	}

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := app.New(log, cfg).Start(ctx); err != nil {
		log.Printf("exit reason: %s\n", err)
		return err
	}
	return nil
}
