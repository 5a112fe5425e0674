// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package schema provides composable value shape descriptors which can
// validate JSON values at runtime and describe themselves as JSON Schema
// for OpenAPI document generation.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/swaggest/jsonschema-go"
)

// Kind classifies the structural shape of a [Schema].
type Kind int

const (
	// KindOther covers scalar and otherwise unclassified shapes.
	KindOther Kind = iota

	// KindObject is an object shape with named properties.
	KindObject

	// KindArray is an array of a single item shape.
	KindArray

	// KindTransform wraps an inner shape with a post-validation
	// transformation of the validated value.
	KindTransform
)

// Violation is a single schema violation reported by [Schema.Validate].
type Violation struct {
	// Path is the dotted location of the offending value within the
	// validated document. It is empty for violations of the root value.
	Path string

	// Message is the validator's description of the violation.
	Message string
}

// String renders the violation as "path: message", or just the message
// when the violation has no path.
func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Schema describes the expected shape of a value. Schemas are built once
// with the package constructors, optionally registered with a [Registry],
// and are read-only afterwards.
type Schema struct {
	kind   Kind
	js     jsonschema.Schema
	items  *Schema
	inner  *Schema
	origin string
	apply  func(any) (any, error)

	// identity tag issued by a Registry. Zero means unregistered.
	handle uint64

	compileOnce sync.Once
	compiled    *santhosh.Schema
	compileErr  error
}

// FromType reflects the Go type T into a [Schema] whose JSON Schema form
// is derived with [jsonschema.Reflector]. It panics if T cannot be
// reflected, which is always a programming error.
func FromType[T any]() *Schema {
	var t T
	var reflector jsonschema.Reflector

	js, err := reflector.Reflect(t, jsonschema.InlineRefs)
	if err != nil {
		panic(fmt.Errorf("schema: reflect %T: %w", t, err))
	}

	kind := KindOther
	switch {
	case js.HasType(jsonschema.Object):
		kind = KindObject
	case js.HasType(jsonschema.Array):
		kind = KindArray
	}

	return &Schema{
		kind: kind,
		js:   js,
	}
}

// Object builds an object [Schema] from named property schemas. The names
// listed in required must be present in validated values.
func Object(props map[string]*Schema, required ...string) *Schema {
	var js jsonschema.Schema
	js.AddType(jsonschema.Object)
	for name, prop := range props {
		js.WithPropertiesItem(name, prop.js.ToSchemaOrBool())
	}
	if len(required) > 0 {
		js.WithRequired(required...)
	}

	return &Schema{
		kind: KindObject,
		js:   js,
	}
}

func simple(t jsonschema.SimpleType) *Schema {
	var js jsonschema.Schema
	js.AddType(t)
	return &Schema{
		kind: KindOther,
		js:   js,
	}
}

// String builds a string [Schema].
func String() *Schema { return simple(jsonschema.String) }

// Int builds an integer [Schema].
func Int() *Schema { return simple(jsonschema.Integer) }

// Number builds a number [Schema].
func Number() *Schema { return simple(jsonschema.Number) }

// Bool builds a boolean [Schema].
func Bool() *Schema { return simple(jsonschema.Boolean) }

// Array builds an array [Schema] of the given item schema. The item
// schema is remembered so that arrays of registered schemas can be
// rendered as references by the openapi package.
func Array(items *Schema) *Schema {
	var js jsonschema.Schema
	js.AddType(jsonschema.Array)

	sb := items.js.ToSchemaOrBool()
	js.Items = &jsonschema.Items{
		SchemaOrBool: &sb,
	}

	return &Schema{
		kind:  KindArray,
		js:    js,
		items: items,
	}
}

// Transform wraps inner with a transformation applied to the validated
// value. Validation is performed against inner; fn then produces the
// typed value handed to request handlers.
func Transform(inner *Schema, fn func(any) (any, error)) *Schema {
	return &Schema{
		kind:  KindTransform,
		js:    inner.js,
		inner: inner,
		apply: fn,
	}
}

// DeclareOrigin records the registry name this schema was derived from.
// A transform wrapping a registered schema renders as a reference to the
// declared origin instead of an inline copy. It returns s for chaining.
func (s *Schema) DeclareOrigin(name string) *Schema {
	s.origin = name
	return s
}

// Kind reports the structural shape of the schema.
func (s *Schema) Kind() Kind { return s.kind }

// Items returns the item schema of a [KindArray] schema, or nil.
func (s *Schema) Items() *Schema { return s.items }

// Inner returns the wrapped schema of a [KindTransform] schema, or nil.
func (s *Schema) Inner() *Schema { return s.inner }

// OriginName returns the name recorded with [Schema.DeclareOrigin].
func (s *Schema) OriginName() string { return s.origin }

// JSONSchema returns the JSON Schema document form of the schema.
func (s *Schema) JSONSchema() jsonschema.Schema { return s.js }

// Validate checks v, an already decoded JSON value, against the schema.
// On success it returns the typed value, which is v after any transform
// functions have been applied. On failure it returns the validator's
// violations in the order they were produced.
func (s *Schema) Validate(v any) (any, []Violation) {
	if s.kind == KindTransform {
		validated, violations := s.inner.Validate(v)
		if len(violations) > 0 {
			return nil, violations
		}
		if s.apply == nil {
			return validated, nil
		}

		transformed, err := s.apply(validated)
		if err != nil {
			return nil, []Violation{{Message: err.Error()}}
		}
		return transformed, nil
	}

	s.compileOnce.Do(func() {
		b, err := json.Marshal(s.js)
		if err != nil {
			s.compileErr = err
			return
		}
		s.compiled, s.compileErr = santhosh.CompileString("schema.json", string(b))
	})
	if s.compileErr != nil {
		return nil, []Violation{{Message: s.compileErr.Error()}}
	}

	err := s.compiled.Validate(v)
	if err == nil {
		return v, nil
	}

	var verr *santhosh.ValidationError
	if !errors.As(err, &verr) {
		return nil, []Violation{{Message: err.Error()}}
	}

	var violations []Violation
	collectLeaves(verr, &violations)
	return nil, violations
}

// collectLeaves flattens a validation error tree into its leaf causes,
// preserving the order the validator produced them in.
func collectLeaves(err *santhosh.ValidationError, out *[]Violation) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}

// pointerToPath converts a JSON pointer ("/pet/name") to the dotted path
// convention used in violation summaries ("pet.name").
func pointerToPath(loc string) string {
	loc = strings.TrimPrefix(loc, "/")
	if loc == "" {
		return ""
	}

	tokens := strings.Split(loc, "/")
	for i, token := range tokens {
		token = strings.ReplaceAll(token, "~1", "/")
		tokens[i] = strings.ReplaceAll(token, "~0", "~")
	}
	return strings.Join(tokens, ".")
}
