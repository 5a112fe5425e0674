// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package openapi

import (
	"github.com/restspec/restspec/schema"

	"github.com/swaggest/openapi-go/openapi3"
)

// resolved is the outcome of resolving one schema against the registry:
// a component reference, an array of a component reference, or a schema
// to be inlined unchanged.
type resolved struct {
	ref      string
	arrayRef bool
	inline   *schema.Schema
}

// resolveSchema decides whether s corresponds to a registered component
// and must be emitted as a reference, or must be inlined. The rules are
// applied in order:
//
//  1. nil resolves to nil.
//  2. A transform resolves to its declared origin's reference when that
//     origin is registered; otherwise it is unwrapped one level and the
//     inner schema is inlined without further resolution.
//  3. A schema registered under a name resolves to that reference.
//  4. An array whose item schema is registered resolves to an array of
//     that reference.
//  5. Anything else is inlined unchanged.
func resolveSchema(reg *schema.Registry, s *schema.Schema) *resolved {
	if s == nil {
		return nil
	}

	if s.Kind() == schema.KindTransform {
		if origin := s.OriginName(); origin != "" {
			if entry, ok := reg.LookupName(origin); ok {
				return &resolved{ref: entry.Ref}
			}
		}
		return &resolved{inline: s.Inner()}
	}

	if entry, ok := reg.Lookup(s); ok {
		return &resolved{ref: entry.Ref}
	}

	if s.Kind() == schema.KindArray {
		if entry, ok := reg.Lookup(s.Items()); ok {
			return &resolved{ref: entry.Ref, arrayRef: true}
		}
	}

	return &resolved{inline: s}
}

// resolveObject applies where an object shaped schema is required, such
// as query and path parameters. Transforms are unwrapped one level; any
// result that is not object shaped collapses to nil.
func resolveObject(s *schema.Schema) *schema.Schema {
	if s == nil {
		return nil
	}
	if s.Kind() == schema.KindTransform {
		s = s.Inner()
	}
	if s == nil || s.Kind() != schema.KindObject {
		return nil
	}
	return s
}

// schemaOrRef renders the resolution outcome in the generator's terms.
func (r *resolved) schemaOrRef() openapi3.SchemaOrRef {
	if r.ref != "" && r.arrayRef {
		arrayType := openapi3.SchemaTypeArray
		items := openapi3.SchemaOrRef{
			SchemaReference: &openapi3.SchemaReference{Ref: r.ref},
		}
		return openapi3.SchemaOrRef{
			Schema: &openapi3.Schema{
				Type:  &arrayType,
				Items: &items,
			},
		}
	}

	if r.ref != "" {
		return openapi3.SchemaOrRef{
			SchemaReference: &openapi3.SchemaReference{Ref: r.ref},
		}
	}

	var sor openapi3.SchemaOrRef
	js := r.inline.JSONSchema()
	sor.FromJSONSchema(js.ToSchemaOrBool())
	return sor
}
