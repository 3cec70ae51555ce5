package router

import "strings"

// RouteID identifies a route.
type RouteID int

const (
	// RouteNotFound is the catch-all for unmatched paths.
	RouteNotFound RouteID = iota

	// RouteHome is the country list.
	RouteHome

	// RouteDetail is the single-country view.
	RouteDetail
)

// String returns the route name.
func (r RouteID) String() string {
	switch r {
	case RouteHome:
		return "home"
	case RouteDetail:
		return "detail"
	default:
		return "not_found"
	}
}

// Route paths and parameter names.
const (
	// HomePath is the root route.
	HomePath = "/"

	// DetailPattern is the detail route pattern.
	DetailPattern = "/detail/:countryName"

	// ParamCountryName is the parameter bound by DetailPattern.
	ParamCountryName = "countryName"

	detailPrefix = "/detail/"
)

// DetailPath returns the detail route for name. The name is substituted
// literally.
func DetailPath(name string) string {
	return detailPrefix + name
}

// Params holds the parameters bound by a match.
type Params map[string]string

// Get returns the parameter value, or "" if it is not bound.
func (p Params) Get(name string) string {
	return p[name]
}

// Match is the result of matching a path.
type Match struct {
	// Route is the matched route.
	Route RouteID

	// Path is the path that was matched.
	Path string

	// Params holds bound parameters. Never nil.
	Params Params
}

type route struct {
	id       RouteID
	segments []string
}

// Router matches paths against registered patterns in registration order.
type Router struct {
	routes []route
}

// New returns a Router with the catalog's routes registered.
func New() *Router {
	r := &Router{}
	r.register(RouteHome, HomePath)
	r.register(RouteDetail, DetailPattern)
	return r
}

func (r *Router) register(id RouteID, pattern string) {
	r.routes = append(r.routes, route{id: id, segments: splitPath(pattern)})
}

// Match returns the first route matching path, or RouteNotFound.
func (r *Router) Match(path string) Match {
	segments := splitPath(path)
	for _, rt := range r.routes {
		if params, ok := rt.match(segments); ok {
			return Match{Route: rt.id, Path: path, Params: params}
		}
	}
	return Match{Route: RouteNotFound, Path: path, Params: Params{}}
}

func (rt route) match(segments []string) (Params, bool) {
	if len(segments) != len(rt.segments) {
		return nil, false
	}
	params := Params{}
	for i, want := range rt.segments {
		got := segments[i]
		if name, ok := strings.CutPrefix(want, ":"); ok {
			if got == "" {
				return nil, false
			}
			params[name] = got
			continue
		}
		if got != want {
			return nil, false
		}
	}
	return params, true
}

// splitPath splits a path into segments, ignoring the leading slash and a
// single trailing slash. The root path has no segments.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
