// Package api is the data-access layer for the remote country service.
//
// It exposes two operations against a single resource collection:
//
//	GET {baseURL}/api/countries         -> []model.CountrySummary
//	GET {baseURL}/api/countries/{name}  -> model.CountryDetail
//
// Every failure (transport error, non-2xx status, undecodable body) is
// returned as a *FetchError whose message starts with an operation specific
// prefix, so callers only ever handle one error shape.
//
// The base URL is injected through NewClient; this package never reads the
// environment.
//
// # Usage
//
//	client, err := api.NewClient("http://localhost:8081")
//	countries, err := client.ListAll(ctx)
//	detail, err := client.GetByName(ctx, "United States")
package api
