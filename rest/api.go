// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/restspec/restspec"
	"github.com/restspec/restspec/health"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/openapi-go/openapi3"
	"gopkg.in/yaml.v3"
)

// ApiOptions holds configuration values used when constructing an [Api].
type ApiOptions struct {
	readiness        health.Monitor
	liveness         health.Monitor
	notFound         http.Handler
	methodNotAllowed http.Handler
}

// ApiOption is an interface for configuring an [Api].
type ApiOption interface {
	ApplyApiOption(*ApiOptions)
}

type apiOptionFunc func(*ApiOptions)

func (f apiOptionFunc) ApplyApiOption(ao *ApiOptions) {
	f(ao)
}

// Readiness registers the given [health.Monitor] to back the readiness
// probe endpoint at GET /health/readiness.
func Readiness(m health.Monitor) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.readiness = m
	})
}

// Liveness registers the given [health.Monitor] to back the liveness
// probe endpoint at GET /health/liveness.
func Liveness(m health.Monitor) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.liveness = m
	})
}

// NotFound configures a custom handler for requests that don't match any
// registered route.
func NotFound(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.notFound = h
	})
}

// MethodNotAllowed configures a custom handler for requests to valid
// routes with unsupported HTTP methods.
func MethodNotAllowed(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.methodNotAllowed = h
	})
}

// Api is an [http.Handler] which serves a [Router] together with its
// assembled OpenAPI document and a set of standard endpoints:
//
//   - the document as JSON at GET /openapi.json
//   - the document as YAML at GET /openapi.yaml
//   - liveness probe at GET /health/liveness
//   - readiness probe at GET /health/readiness
type Api struct {
	mux *chi.Mux
}

// NewApi initializes an [Api] serving r and its assembled document.
func NewApi(doc *openapi3.Spec, r *Router, opts ...ApiOption) *Api {
	log := restspec.Logger("rest")

	var defaultHealth health.Binary
	defaultHealth.MarkHealthy()

	ao := &ApiOptions{
		readiness: &defaultHealth,
		liveness:  &defaultHealth,
	}
	for _, opt := range opts {
		opt.ApplyApiOption(ao)
	}

	mux := chi.NewMux()

	mux.Get("/openapi.json", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		enc := json.NewEncoder(w)
		err := enc.Encode(doc)
		if err == nil {
			return
		}
		log.ErrorContext(
			req.Context(),
			"failed to encode openapi schema to json",
			slog.Any("error", err),
		)
	})

	mux.Get("/openapi.yaml", func(w http.ResponseWriter, req *http.Request) {
		b, err := marshalSpecYaml(doc)
		if err != nil {
			log.ErrorContext(
				req.Context(),
				"failed to encode openapi schema to yaml",
				slog.Any("error", err),
			)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(b)
	})

	mux.Get("/health/liveness", healthHandler(ao.liveness))
	mux.Get("/health/readiness", healthHandler(ao.readiness))

	if ao.notFound != nil {
		mux.NotFound(ao.notFound.ServeHTTP)
	}
	if ao.methodNotAllowed != nil {
		mux.MethodNotAllowed(ao.methodNotAllowed.ServeHTTP)
	}

	// mount the underlying mux so custom not found and method not
	// allowed handlers propagate into it
	mux.Mount("/", r.mux)

	return &Api{
		mux: mux,
	}
}

// ServeHTTP implements the [http.Handler] interface.
func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// marshalSpecYaml renders the document as YAML by round tripping it
// through its JSON form, so the document's json field names are kept.
func marshalSpecYaml(doc *openapi3.Spec) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var v any
	err = json.Unmarshal(b, &v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

func healthHandler(m health.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		healthy, err := m.Healthy(r.Context())
		if !healthy || err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
