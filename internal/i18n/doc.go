// Package i18n localizes the user-facing labels of the catalog UI and
// formats numbers for the configured locale.
//
// Message catalogs are TOML files embedded from locales/ and loaded into a
// go-i18n bundle. English is the default language: a message missing from
// the requested locale falls back to English, and a message missing from
// English falls back to its ID.
package i18n
