// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Entry is one route registration record. Exactly one of Handler or Sub
// is set: leaf routes carry the handler registered for Method and
// Pattern, mounted sub-routers carry the router mounted at Pattern.
type Entry struct {
	// Method is the HTTP method of a leaf route. Empty for mounts.
	Method string

	// Pattern is the path template of a leaf route, or the mount
	// prefix of a sub-router. Templates use ":name" placeholders.
	Pattern string

	// Handler is the terminal handler of a leaf route.
	Handler http.Handler

	// Sub is the mounted sub-router.
	Sub *Router
}

// Router is an [http.Handler] which records every registration it
// receives. Serving is delegated to a [chi.Mux]; the records exist so
// documents can be assembled from the full route set afterwards.
type Router struct {
	mux     *chi.Mux
	entries []Entry
}

// NewRouter initializes a [Router].
func NewRouter() *Router {
	return &Router{
		mux: chi.NewMux(),
	}
}

// Handle registers h for requests matching method and pattern. Patterns
// use ":name" placeholders for path parameters, e.g. "/pets/:id".
func (r *Router) Handle(method, pattern string, h http.Handler) {
	mp := muxPattern(pattern)
	r.mux.Method(method, mp, otelhttp.WithRouteTag(mp, h))

	r.entries = append(r.entries, Entry{
		Method:  method,
		Pattern: pattern,
		Handler: h,
	})
}

// HandleFunc registers f for requests matching method and pattern.
func (r *Router) HandleFunc(method, pattern string, f http.HandlerFunc) {
	r.Handle(method, pattern, f)
}

// Mount attaches sub underneath prefix. Routes registered on sub are
// served, and later discovered, with prefix prepended.
func (r *Router) Mount(prefix string, sub *Router) {
	at := prefix
	if at == "" {
		at = "/"
	}
	r.mux.Mount(muxPattern(at), sub.mux)

	r.entries = append(r.entries, Entry{
		Pattern: prefix,
		Sub:     sub,
	})
}

// Entries returns the registration records in registration order.
func (r *Router) Entries() []Entry {
	return r.entries
}

// ServeHTTP implements the [http.Handler] interface.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// muxPattern translates a ":name" path template into the "{name}" form
// understood by chi. The rewrite is segment wise so placeholder names
// appearing as ordinary text elsewhere in the path are left alone.
func muxPattern(pattern string) string {
	segments := strings.Split(pattern, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") && len(segment) > 1 {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
