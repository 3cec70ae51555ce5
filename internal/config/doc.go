// Package config holds the resolved configuration of countryflags and the
// loaders that build it: defaults, the YAML .countryflags file and
// COUNTRYFLAGS_* environment variables. Command-line flags are applied last
// by the CLI.
package config
