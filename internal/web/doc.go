// Package web serves the country flags UI over HTTP.
//
// Every GET request other than /healthz is a navigation: a fresh session
// navigates to the request path, waits a bounded time for the page to
// settle and renders it. Nothing fetched is cached between requests.
package web
