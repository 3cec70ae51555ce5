// Package main provides the entry point for the countryflags CLI.
//
// countryflags is a small catalog of country flags backed by a REST data
// service. It serves a browsable web UI and offers the same data on the
// command line.
//
// Usage:
//
//	countryflags serve
//	countryflags list
//	countryflags show "United States" India
//
// See --help for all available options.
package main

func main() {
	Execute()
}
