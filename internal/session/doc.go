// Package session hosts the views of one browsing session.
//
// A Session plays the part of the browser: it keeps the navigation history,
// matches each path against the router and mounts the matching view.
// Navigating between two detail paths re-keys the mounted Detail view
// instead of replacing it.
package session
