package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countryflags",
		Short: "Browse country flags from a REST data service",
		Long: `countryflags shows the flag, population and capital of every country
known to a REST data service (GET /api/countries and
GET /api/countries/{name}).

Run "countryflags serve" for the web UI, or use list and show on the
command line. The data service URL defaults to http://localhost:8081 and
can be set in .countryflags, with COUNTRYFLAGS_API_URL or with --api-url.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.StringP("config", "c", "",
		"Configuration file path (default: .countryflags in current, XDG config or home directory)")
	pf.String("api-url", "", "Base URL of the country data service")
	pf.String("proxy", "", "Proxy for data service requests (http, https, socks5 or socks5h URL)")
	pf.String("locale", "", "UI and number format language (BCP 47 tag, e.g. en, es, ja)")
	pf.String("log-format", "", "Log format: text or json")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
