package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ryferguson/cornwand/internal/preview"
)

func serveCmd(a *app) *cobra.Command {
	var (
		port     int
		host     string
		noReload bool
	)

	cmd := &cobra.Command{
		Use:   "serve [DIR]",
		Short: "Preview a directory of documents",
		Long: `Serve every *.json document in DIR as HTML.

DIR defaults to preview.dir from wand.json. Open the index page to see the
documents. With live reload on, browsers reload when a document changes and
show the decode error when a change breaks it.

Examples:
  wand serve
  wand serve site --port=8080
  wand serve --host=0.0.0.0 --no-reload`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if len(args) == 1 {
				cfg.Preview.Dir = args[0]
			}
			if cmd.Flags().Changed("port") {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if noReload {
				cfg.Preview.LiveReload = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			dir := cfg.Preview.Dir
			if len(args) == 0 {
				dir = cfg.DocumentDir()
			}

			server, err := preview.New(preview.Options{
				Dir:          dir,
				Addr:         cfg.PreviewAddress(),
				LiveReload:   cfg.Preview.LiveReload,
				PollInterval: cfg.PollDuration(),
				MetricsPath:  cfg.Preview.MetricsPath,
				Registerer:   prometheus.DefaultRegisterer,
				Gatherer:     prometheus.DefaultGatherer,
				Logger:       a.logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			success(out, "Serving %s", dir)
			info(out, "Open %s", cfg.PreviewURL())

			return server.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from wand.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from wand.json)")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Disable live reload")

	return cmd
}
