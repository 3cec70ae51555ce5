package model

// CountrySummary is the list-view record for a country.
// Name is the identity key. It is used verbatim as a route parameter and as
// the lookup key against the remote service, so it must be treated as an
// opaque string that is not guaranteed to be URL-safe.
type CountrySummary struct {
	// Name is the country's common name (e.g. "United States").
	Name string `json:"name"`

	// Flag is the URL of the flag image.
	Flag string `json:"flag"`
}

// CountryDetail is the full-fidelity record for a country.
// Its Name is expected to match the name used to request it; the service is
// trusted to enforce this and the client does not verify it.
type CountryDetail struct {
	// Name is the country's common name.
	Name string `json:"name"`

	// Population is the number of inhabitants. Never negative.
	Population int64 `json:"population"`

	// Capital is the capital city. May be empty for territories without one.
	Capital string `json:"capital"`

	// Flag is the URL of the flag image.
	Flag string `json:"flag"`
}
