package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/countryflags/internal/api"
	"github.com/nao1215/countryflags/internal/config"
	"github.com/nao1215/countryflags/internal/i18n"
	cflog "github.com/nao1215/countryflags/internal/log"
	"github.com/nao1215/countryflags/internal/report"
)

// buildConfig resolves the configuration: defaults, then the config file,
// then the environment, then flags set on the command line.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	for name, dst := range map[string]*string{
		"api-url":    &cfg.APIURL,
		"proxy":      &cfg.ProxyURL,
		"locale":     &cfg.Locale,
		"log-format": &cfg.LogFormat,
	} {
		if err := stringFlag(cmd, name, dst); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("verbose") {
		if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Lookup("json") != nil {
		if cfg.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
			return nil, err
		}
		if cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// stringFlag copies the named flag into dst if it was set.
func stringFlag(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// validConfig is buildConfig followed by Validate.
func validConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return cflog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat == config.LogFormatJSON)
}

// newClient creates the data service client, routed through the configured
// proxy if any.
func newClient(cfg *config.Config, logger *slog.Logger) (*api.Client, error) {
	opts := []api.Option{api.WithLogger(logger)}
	if cfg.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(cfg.UserAgent))
	}
	if cfg.ProxyURL != "" {
		transport, err := api.NewTransport(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure proxy: %w", err)
		}
		opts = append(opts, api.WithHTTPClient(&http.Client{Transport: transport}))
		logger.Debug("using proxy", "proxy", cfg.ProxyURL)
	}
	return api.NewClient(cfg.APIURL, opts...)
}

func outputFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONOutput:
		return report.FormatJSON
	case cfg.MarkdownOutput:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// addFormatFlags adds --json and --markdown.
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown (mutually exclusive with --json)")
}

func newReportWriter(cmd *cobra.Command, cfg *config.Config) (report.Writer, error) {
	tr, err := i18n.NewTranslator(cfg.Locale)
	if err != nil {
		return nil, err
	}
	return report.New(outputFormat(cfg), cmd.OutOrStdout(), tr), nil
}
