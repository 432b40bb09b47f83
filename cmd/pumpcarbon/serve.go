package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/pumpcarbon/internal/carbon"
	"github.com/rshade/pumpcarbon/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("listen") {
				listen = a.cfg.ListenAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Options{
				Converter:   a.converter,
				Calculator:  carbon.NewCalculator(a.cfg.Constants),
				StrictUnits: a.cfg.StrictUnits,
			}, a.logger)
			return srv.ListenAndServe(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "address to listen on")
	return cmd
}
