// Package view implements the catalog's views: the country list (Home), the
// single-country view (Detail) and the static not-found page.
//
// Each view is a small state machine that owns its local state. Activation
// starts the view's fetch on its own goroutine; the result is published under
// the view's lock and every state change wakes up Wait callers. Rendering
// produces a complete HTML document through html/template.
//
// Views never navigate by themselves. User actions (Home.Select,
// Detail.Back) are reported to a Navigator, which decides what happens next.
package view
