// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package openapi

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/restspec/restspec"
	"github.com/restspec/restspec/rest"
	"github.com/restspec/restspec/schema"

	"github.com/swaggest/jsonschema-go"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// Config carries the document wide inputs of one assembly.
type Config struct {
	// Title and Version populate the document's info section.
	Title   string
	Version string

	// OpenAPIVersion is the target specification version string.
	// Defaults to "3.0.3".
	OpenAPIVersion string

	// Servers lists the server URLs advertised by the document.
	Servers []string

	// Registry holds the named schemas emitted as reusable components.
	Registry *schema.Registry

	// ErrorDescriptions enables the synthesized 401 and 403 responses,
	// keyed by status code. Other keys are ignored.
	ErrorDescriptions map[int]string

	// SecuritySchemes are merged into the document's components after
	// generation. Caller supplied entries win on key collision.
	SecuritySchemes map[string]openapi3.SecurityScheme

	// DefaultTag groups routes without an explicit tag. Defaults to
	// "default".
	DefaultTag string

	// LogHandler receives assembly diagnostics. Defaults to the
	// process log handler.
	LogHandler slog.Handler
}

// Assemble discovers every route reachable from the given routers and
// produces the OpenAPI document describing them. It fails only when the
// underlying document generator rejects an operation; every other
// irregularity is either skipped or repaired with a diagnostic.
//
// Assembling twice from the same inputs yields structurally identical
// documents: routes are added in discovery order and parameters are
// sorted by name.
func Assemble(cfg Config, routers ...*rest.Router) (*openapi3.Spec, error) {
	if cfg.OpenAPIVersion == "" {
		cfg.OpenAPIVersion = "3.0.3"
	}
	if cfg.DefaultTag == "" {
		cfg.DefaultTag = "default"
	}
	if cfg.LogHandler == nil {
		cfg.LogHandler = restspec.LogHandler("openapi")
	}
	log := slog.New(cfg.LogHandler)

	spec := &openapi3.Spec{
		Openapi: cfg.OpenAPIVersion,
		Info: openapi3.Info{
			Title:   cfg.Title,
			Version: cfg.Version,
		},
	}
	for _, u := range cfg.Servers {
		spec.Servers = append(spec.Servers, openapi3.Server{URL: u})
	}

	for _, entry := range cfg.Registry.Entries() {
		var sor openapi3.SchemaOrRef
		js := entry.Schema.JSONSchema()
		sor.FromJSONSchema(js.ToSchemaOrBool())
		spec.ComponentsEns().SchemasEns().WithMapOfSchemaOrRefValuesItem(entry.Name, sor)
	}

	for _, route := range Discover(routers...) {
		op := buildOperation(cfg, route)
		endpoint := docPath(route.Path)

		err := spec.AddOperation(route.Method, endpoint, op)
		if err != nil {
			return nil, fmt.Errorf("openapi: add operation %s %s: %w", route.Method, endpoint, err)
		}
	}

	mergeSecuritySchemes(spec, cfg.SecuritySchemes)
	repairPathParameters(spec, log)

	return spec, nil
}

// buildOperation renders one discovered route as an operation. Routes
// registered without a descriptor are still documented, with a bare 200
// response, so the document reflects every served route.
func buildOperation(cfg Config, route Route) openapi3.Operation {
	var op openapi3.Operation

	d, ok := rest.DescriptorOf(route.Handler)
	if !ok {
		op.Tags = []string{cfg.DefaultTag}
		op.Parameters = appendPlaceholderParameters(nil, route.Path, nil)
		op.Responses = openapi3.Responses{
			MapOfResponseOrRefValues: map[string]openapi3.ResponseOrRef{
				"200": {Response: &openapi3.Response{Description: "OK"}},
			},
		}
		return op
	}

	tag := d.Tag
	if tag == "" {
		tag = cfg.DefaultTag
	}
	op.Tags = []string{tag}

	if d.Summary != "" {
		op.Summary = &d.Summary
	}
	if d.Description != "" {
		op.Description = &d.Description
	}
	if d.Deprecated {
		op.Deprecated = ptr.Ref(true)
	}

	op.Parameters = parameters(d, route.Path)

	if d.Body != nil {
		sor := resolveSchema(cfg.Registry, d.Body).schemaOrRef()
		op.RequestBody = &openapi3.RequestBodyOrRef{
			RequestBody: &openapi3.RequestBody{
				Required: ptr.Ref(true),
				Content: map[string]openapi3.MediaType{
					"application/json": {Schema: &sor},
				},
			},
		}
	}

	var response *resolved
	if d.Response != nil {
		response = resolveSchema(cfg.Registry, d.Response)
	}
	op.Responses = openapi3.Responses{
		MapOfResponseOrRefValues: synthesizeResponses(d, response, cfg.ErrorDescriptions),
	}

	if d.Security != "" {
		op.WithSecurity(map[string][]string{
			d.Security: {},
		})
	}

	if d.Finalize != nil {
		d.Finalize(&op)
	}
	return op
}

// parameters renders the route's path and query parameters: path
// parameters from the params object schema plus a required string
// parameter for every placeholder the schema does not cover, then query
// parameters from the query object schema. Properties are emitted in
// name order so assembly is deterministic.
func parameters(d *rest.Descriptor, routePath string) []openapi3.ParameterOrRef {
	var out []openapi3.ParameterOrRef

	covered := make(map[string]bool)
	if obj := resolveObject(d.Params); obj != nil {
		js := obj.JSONSchema()
		required := requiredSet(js)

		for _, name := range slices.Sorted(maps.Keys(js.Properties)) {
			covered[name] = true
			out = append(out, parameter(name, openapi3.ParameterInPath, js.Properties[name], required[name]))
		}
	}
	out = appendPlaceholderParameters(out, routePath, covered)

	if obj := resolveObject(d.Query); obj != nil {
		js := obj.JSONSchema()
		required := requiredSet(js)

		for _, name := range slices.Sorted(maps.Keys(js.Properties)) {
			out = append(out, parameter(name, openapi3.ParameterInQuery, js.Properties[name], required[name]))
		}
	}

	return out
}

// appendPlaceholderParameters adds a required string path parameter for
// every ":name" placeholder of the route not already covered.
func appendPlaceholderParameters(out []openapi3.ParameterOrRef, routePath string, covered map[string]bool) []openapi3.ParameterOrRef {
	for _, segment := range strings.Split(routePath, "/") {
		if !strings.HasPrefix(segment, ":") || len(segment) < 2 {
			continue
		}
		name := segment[1:]
		if covered[name] {
			continue
		}

		js := schema.String().JSONSchema()
		sb := js.ToSchemaOrBool()
		out = append(out, parameter(name, openapi3.ParameterInPath, sb, true))
	}
	return out
}

func parameter(name string, in openapi3.ParameterIn, sb jsonschema.SchemaOrBool, required bool) openapi3.ParameterOrRef {
	var sor openapi3.SchemaOrRef
	sor.FromJSONSchema(sb)

	p := &openapi3.Parameter{
		Name:   name,
		In:     in,
		Schema: &sor,
	}
	if required {
		p.Required = ptr.Ref(true)
	}
	return openapi3.ParameterOrRef{Parameter: p}
}

func requiredSet(js jsonschema.Schema) map[string]bool {
	set := make(map[string]bool, len(js.Required))
	for _, name := range js.Required {
		set[name] = true
	}
	return set
}

// docPath translates the internal ":name" placeholder form into the
// "{name}" form of the document. The rewrite is segment wise so a
// placeholder name appearing as ordinary text elsewhere in the path can
// never be mis-rewritten.
func docPath(p string) string {
	segments := strings.Split(p, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") && len(segment) > 1 {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// mergeSecuritySchemes adds the caller supplied scheme definitions to
// the document's components. Caller entries overwrite generated ones.
func mergeSecuritySchemes(spec *openapi3.Spec, schemes map[string]openapi3.SecurityScheme) {
	for _, name := range slices.Sorted(maps.Keys(schemes)) {
		scheme := schemes[name]
		spec.ComponentsEns().SecuritySchemesEns().WithMapOfSecuritySchemeOrRefValuesItem(
			name,
			openapi3.SecuritySchemeOrRef{
				SecurityScheme: &scheme,
			},
		)
	}
}

// repairPathParameters forces every path parameter of the generated
// document to be required. Several OpenAPI consumers reject optional
// path parameters, so an optional one is treated as caller error to be
// repaired, with a diagnostic naming the route and parameter, rather
// than a reason to fail assembly.
func repairPathParameters(spec *openapi3.Spec, log *slog.Logger) {
	for _, p := range slices.Sorted(maps.Keys(spec.Paths.MapOfPathItemValues)) {
		item := spec.Paths.MapOfPathItemValues[p]

		for _, method := range slices.Sorted(maps.Keys(item.MapOfOperationValues)) {
			op := item.MapOfOperationValues[method]

			for _, por := range op.Parameters {
				param := por.Parameter
				if param == nil || param.In != openapi3.ParameterInPath {
					continue
				}
				if param.Required != nil && *param.Required {
					continue
				}

				param.Required = ptr.Ref(true)
				log.Warn(
					"optional path parameter corrected",
					slog.String("route", strings.ToUpper(method)+" "+p),
					slog.String("parameter", param.Name),
				)
			}
		}
	}
}
