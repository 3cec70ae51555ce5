// Package model defines the data structures shared by the data-access layer,
// the views and the CLI output writers.
//
// This package contains the following main types:
//   - CountrySummary: the lightweight record shown as a tile in the list view
//   - CountryDetail: the full record shown in the detail view
//   - LoadState: the lifecycle of a view's fetch
//   - Result: an explicit success/failure variant for fetch outcomes
//
// Design decision: the records mirror the JSON served by the remote country
// service one to one. No validation is applied when decoding; a record is
// whatever the service returned.
package model
