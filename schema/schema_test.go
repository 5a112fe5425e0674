// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggest/jsonschema-go"
)

type pet struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestFromType(t *testing.T) {
	t.Run("classifies a struct as an object", func(t *testing.T) {
		s := FromType[pet]()

		assert.Equal(t, KindObject, s.Kind())
		js := s.JSONSchema()
		assert.True(t, js.HasType(jsonschema.Object))
	})

	t.Run("classifies a slice as an array", func(t *testing.T) {
		s := FromType[[]string]()

		assert.Equal(t, KindArray, s.Kind())
	})
}

func TestSchema_Validate(t *testing.T) {
	t.Run("returns the value on success", func(t *testing.T) {
		s := Object(map[string]*Schema{
			"name": String(),
		}, "name")

		v, violations := s.Validate(map[string]any{"name": "gopher"})
		require.Empty(t, violations)
		assert.Equal(t, map[string]any{"name": "gopher"}, v)
	})

	t.Run("reports a type mismatch with the field path", func(t *testing.T) {
		s := Object(map[string]*Schema{
			"name": String(),
		}, "name")

		_, violations := s.Validate(map[string]any{"name": float64(123)})
		require.Len(t, violations, 1)
		assert.Equal(t, "name", violations[0].Path)
		assert.Equal(t, "expected string, but got number", violations[0].Message)
	})

	t.Run("reports a missing required property without a path", func(t *testing.T) {
		s := Object(map[string]*Schema{
			"name": String(),
		}, "name")

		_, violations := s.Validate(map[string]any{})
		require.Len(t, violations, 1)
		assert.Empty(t, violations[0].Path)
		assert.Contains(t, violations[0].Message, "name")
	})

	t.Run("reports violations inside array items", func(t *testing.T) {
		s := Array(String())

		_, violations := s.Validate([]any{"ok", float64(1)})
		require.Len(t, violations, 1)
		assert.Equal(t, "1", violations[0].Path)
	})

	t.Run("validates reflected schemas", func(t *testing.T) {
		s := FromType[pet]()

		_, violations := s.Validate(map[string]any{
			"name": "gopher",
			"age":  float64(3),
		})
		assert.Empty(t, violations)
	})
}

func TestTransform(t *testing.T) {
	t.Run("applies the transform to the validated value", func(t *testing.T) {
		s := Transform(String(), func(v any) (any, error) {
			return strconv.Atoi(v.(string))
		})

		v, violations := s.Validate("42")
		require.Empty(t, violations)
		assert.Equal(t, 42, v)
	})

	t.Run("propagates inner violations unchanged", func(t *testing.T) {
		s := Transform(String(), func(v any) (any, error) {
			return v, nil
		})

		_, violations := s.Validate(float64(1))
		require.Len(t, violations, 1)
		assert.Equal(t, "expected string, but got number", violations[0].Message)
	})

	t.Run("reports a transform failure as a violation", func(t *testing.T) {
		s := Transform(String(), func(v any) (any, error) {
			return nil, errors.New("not a color")
		})

		_, violations := s.Validate("teal")
		require.Len(t, violations, 1)
		assert.Equal(t, "not a color", violations[0].Message)
	})

	t.Run("records a declared origin", func(t *testing.T) {
		inner := Object(nil)
		s := Transform(inner, nil).DeclareOrigin("Pet")

		assert.Equal(t, KindTransform, s.Kind())
		assert.Equal(t, "Pet", s.OriginName())
		assert.Same(t, inner, s.Inner())
	})
}

func TestViolation_String(t *testing.T) {
	t.Run("joins path and message", func(t *testing.T) {
		v := Violation{Path: "pet.name", Message: "expected string, but got number"}
		assert.Equal(t, "pet.name: expected string, but got number", v.String())
	})

	t.Run("omits an empty path", func(t *testing.T) {
		v := Violation{Message: "missing properties: 'name'"}
		assert.Equal(t, "missing properties: 'name'", v.String())
	})
}

func TestPointerToPath(t *testing.T) {
	assert.Equal(t, "", pointerToPath(""))
	assert.Equal(t, "", pointerToPath("/"))
	assert.Equal(t, "name", pointerToPath("/name"))
	assert.Equal(t, "pets.0.name", pointerToPath("/pets/0/name"))
	assert.Equal(t, "a/b", pointerToPath("/a~1b"))
}
