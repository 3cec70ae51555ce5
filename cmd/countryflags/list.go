package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every country and its flag",
		Long: `List fetches GET /api/countries and prints every country with its
flag URL.

Examples:
  countryflags list
  countryflags list --json
  countryflags list --markdown > flags.md`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}
	addFormatFlags(cmd)
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := validConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	countries, err := client.ListAll(ctx)
	if err != nil {
		return err
	}

	w, err := newReportWriter(cmd, cfg)
	if err != nil {
		return err
	}
	_, err = w.WriteCountries(countries)
	return err
}
