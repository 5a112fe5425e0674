// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package openapi

import (
	"net/http"
	"strings"

	"github.com/restspec/restspec/rest"
)

// Route is one discovered (path, method, handler) combination. The path
// is the full template including every mount prefix above the route,
// still in the internal ":name" placeholder form.
type Route struct {
	Path    string
	Method  string
	Handler http.Handler
}

// Discover walks the registration records of the given routers depth
// first and returns every reachable route: top level routers in caller
// order, records within a router in registration order. Mounted
// sub-routers contribute their prefix to everything found inside them.
//
// Discovery never fails; records missing a method, pattern or handler
// are skipped.
func Discover(routers ...*rest.Router) []Route {
	var routes []Route
	for _, r := range routers {
		discover("", r, &routes)
	}
	return routes
}

func discover(prefix string, r *rest.Router, out *[]Route) {
	for _, entry := range r.Entries() {
		if entry.Sub != nil {
			discover(joinPath(prefix, entry.Pattern), entry.Sub, out)
			continue
		}
		if entry.Method == "" || entry.Pattern == "" || entry.Handler == nil {
			continue
		}

		*out = append(*out, Route{
			Path:    joinPath(prefix, entry.Pattern),
			Method:  entry.Method,
			Handler: entry.Handler,
		})
	}
}

// joinPath prepends a mount prefix to a path template. Empty and "/"
// prefixes contribute nothing.
func joinPath(prefix, pattern string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if pattern == "" || pattern == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	return prefix + pattern
}
