package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/countryflags/internal/config"
	"github.com/nao1215/countryflags/internal/history"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show pages visited in the web UI",
		Long: `History prints the most recent pages visited while "countryflags serve"
ran with history enabled (--history or "history: true" in .countryflags).
Only paths are stored, never country data.

Examples:
  countryflags history
  countryflags history --limit 50 --json
  countryflags history --clear`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}
	addFormatFlags(cmd)
	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit, "Number of navigations to show")
	cmd.Flags().Bool("clear", false, "Delete every recorded navigation")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := validConfig(cmd)
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	clearAll, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}

	w, err := newReportWriter(cmd, cfg)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.DBDir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, history.ErrNotFound) {
		if clearAll {
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared 0 navigations")
			return nil
		}
		_, err = w.WriteHistory(nil)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	if clearAll {
		n, err := store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d navigations\n", n)
		return nil
	}

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	_, err = w.WriteHistory(entries)
	return err
}
