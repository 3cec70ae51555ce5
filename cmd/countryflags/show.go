package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/countryflags/internal/config"
	"github.com/nao1215/countryflags/internal/model"
	"github.com/nao1215/countryflags/internal/pipeline"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show COUNTRY...",
		Short: "Show population, capital and flag of countries",
		Long: `Show fetches GET /api/countries/{name} for every argument, several at a
time, and prints the results in argument order. Countries that cannot be
fetched are reported on stderr and make the command fail after the others
are printed.

Examples:
  countryflags show "United States"
  countryflags show India Tunisia Japan --concurrency 2
  countryflags show India Tunisia --markdown`,
		Args: cobra.MinimumNArgs(1),
		RunE: runShowCmd,
	}
	addFormatFlags(cmd)
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency, "Maximum number of concurrent fetches")
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
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

	fetcher := pipeline.NewBatchFetcher(client,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)
	results, err := fetcher.FetchDetails(ctx, args)
	if err != nil {
		return err
	}

	details := make([]*model.CountryDetail, 0, len(results))
	failed := 0
	for i, r := range results {
		d, err := r.Unwrap()
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[i], err)
			continue
		}
		details = append(details, d)
	}

	if len(details) > 0 {
		w, err := newReportWriter(cmd, cfg)
		if err != nil {
			return err
		}
		if _, err := w.WriteDetails(details); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d countries could not be fetched", failed, len(args))
	}
	return nil
}
