// Package pipeline fetches many countries concurrently.
//
// BatchFetcher fans GetByName calls out over an errgroup with a concurrency
// limit. Results come back in input order and a failed fetch does not stop
// the others.
package pipeline
