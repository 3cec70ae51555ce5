package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/countryflags/internal/config"
	"github.com/nao1215/countryflags/internal/history"
	"github.com/nao1215/countryflags/internal/i18n"
	"github.com/nao1215/countryflags/internal/view"
	"github.com/nao1215/countryflags/internal/web"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the country flags web UI",
		Long: `Serve starts the web UI.

Routes:
  /                      grid of every country flag
  /detail/{countryName}  flag, population and capital of one country
  /healthz               liveness and page counters (JSON)
  anything else          "Page Not Found"

Every page request fetches fresh data from the data service. A page whose
data has not arrived within --render-wait is answered with the loading
placeholder and reloads itself.

Examples:
  # Serve on :3000 against http://localhost:8081
  countryflags serve

  # Another data service and port, in Spanish
  countryflags serve --api-url https://countries.example.com -l :8080 --locale es

  # Record visited pages for "countryflags history"
  countryflags serve --history`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress, "Listen address")
	cmd.Flags().Duration("render-wait", config.DefaultRenderWait,
		"How long a page request waits for data before answering with the loading page")
	cmd.Flags().Bool("history", false, "Record visited pages in the history database")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := stringFlag(cmd, "listen", &cfg.ListenAddress); err != nil {
		return err
	}
	if cmd.Flags().Changed("render-wait") {
		if cfg.RenderWait, err = cmd.Flags().GetDuration("render-wait"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("history") {
		if cfg.History, err = cmd.Flags().GetBool("history"); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	tr, err := i18n.NewTranslator(cfg.Locale)
	if err != nil {
		return err
	}
	renderer, err := view.NewRenderer(tr)
	if err != nil {
		return err
	}

	opts := []web.Option{
		web.WithLogger(logger),
		web.WithRenderWait(cfg.RenderWait),
	}
	if cfg.History {
		store, err := history.Open(cfg.DBDir, history.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close()
		opts = append(opts, web.WithRecorder(store))
		logger.Debug("recording navigation history", "path", store.Path())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving country flags on %s (data service: %s)\n",
		cfg.ListenAddress, client.BaseURL())

	return web.NewServer(client, renderer, opts...).ListenAndServe(ctx, cfg.ListenAddress)
}
