// Package router maps navigation paths to the catalog's views and keeps the
// navigation history.
//
// Three routes exist:
//
//	/                     -> RouteHome
//	/detail/:countryName  -> RouteDetail, countryName bound from the path
//	anything else         -> RouteNotFound
//
// Paths are built and matched without URL encoding. A ":name" segment binds
// exactly one non-empty path segment, so a country name containing "/" does
// not match the detail route.
package router
