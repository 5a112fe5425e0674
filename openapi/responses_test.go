// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package openapi

import (
	"net/http"
	"testing"

	"github.com/restspec/restspec/rest"
	"github.com/restspec/restspec/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggest/openapi-go/openapi3"
)

func TestSynthesizeResponses(t *testing.T) {
	t.Run("a bare route gets only a 204", func(t *testing.T) {
		responses := synthesizeResponses(&rest.Descriptor{}, nil, nil)

		require.Len(t, responses, 1)
		require.Contains(t, responses, "204")
		assert.Equal(t, "No Content", responses["204"].Response.Description)
	})

	t.Run("a response schema yields a JSON 200 instead of a 204", func(t *testing.T) {
		r := &resolved{ref: "#/components/schemas/Pet"}
		responses := synthesizeResponses(&rest.Descriptor{Response: schema.Object(nil)}, r, nil)

		require.Contains(t, responses, "200")
		assert.NotContains(t, responses, "204")

		mt, ok := responses["200"].Response.Content["application/json"]
		require.True(t, ok)
		require.NotNil(t, mt.Schema.SchemaReference)
		assert.Equal(t, "#/components/schemas/Pet", mt.Schema.SchemaReference.Ref)
	})

	t.Run("a content type yields an opaque 200 and wins over a response schema", func(t *testing.T) {
		d := &rest.Descriptor{
			ContentType: "text/csv",
			Response:    schema.Object(nil),
		}
		responses := synthesizeResponses(d, &resolved{inline: d.Response}, nil)

		require.Contains(t, responses, "200")
		assert.NotContains(t, responses, "204")

		mt, ok := responses["200"].Response.Content["text/csv"]
		require.True(t, ok)
		assert.Nil(t, mt.Schema)
	})

	t.Run("404 appears exactly when path parameters are declared", func(t *testing.T) {
		with := synthesizeResponses(&rest.Descriptor{Params: schema.Object(nil)}, nil, nil)
		require.Contains(t, with, "404")
		assert.Equal(t, "Not Found", with["404"].Response.Description)

		without := synthesizeResponses(&rest.Descriptor{}, nil, nil)
		assert.NotContains(t, without, "404")
	})

	t.Run("params and body together yield both 404 and 400", func(t *testing.T) {
		responses := synthesizeResponses(&rest.Descriptor{
			Params: schema.Object(nil),
			Body:   schema.Object(nil),
		}, nil, nil)

		assert.Contains(t, responses, "404")
		assert.Contains(t, responses, "400")
	})

	t.Run("400 appears exactly when query or body validation is declared", func(t *testing.T) {
		cases := map[string]struct {
			d      rest.Descriptor
			expect bool
		}{
			"neither":        {d: rest.Descriptor{}, expect: false},
			"body only":      {d: rest.Descriptor{Body: schema.Object(nil)}, expect: true},
			"query only":     {d: rest.Descriptor{Query: schema.Object(nil)}, expect: true},
			"body and query": {d: rest.Descriptor{Body: schema.Object(nil), Query: schema.Object(nil)}, expect: true},
			"params only":    {d: rest.Descriptor{Params: schema.Object(nil)}, expect: false},
		}

		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				responses := synthesizeResponses(&tc.d, nil, nil)
				assert.Equal(t, tc.expect, hasStatus(responses, "400"))
			})
		}
	})

	t.Run("401 and 403 appear exactly when descriptions are supplied", func(t *testing.T) {
		responses := synthesizeResponses(&rest.Descriptor{}, nil, map[int]string{
			http.StatusUnauthorized: "missing credentials",
		})
		require.Contains(t, responses, "401")
		assert.Equal(t, "missing credentials", responses["401"].Response.Description)
		assert.NotContains(t, responses, "403")

		responses = synthesizeResponses(&rest.Descriptor{}, nil, map[int]string{
			http.StatusForbidden: "insufficient scope",
		})
		assert.NotContains(t, responses, "401")
		require.Contains(t, responses, "403")
		assert.Equal(t, "insufficient scope", responses["403"].Response.Description)
	})

	t.Run("other description keys are ignored", func(t *testing.T) {
		responses := synthesizeResponses(&rest.Descriptor{}, nil, map[int]string{
			http.StatusTeapot: "short and stout",
		})

		assert.NotContains(t, responses, "418")
	})

	t.Run("error responses carry the error envelope", func(t *testing.T) {
		responses := synthesizeResponses(&rest.Descriptor{Params: schema.Object(nil)}, nil, nil)

		mt, ok := responses["404"].Response.Content["application/json"]
		require.True(t, ok)
		require.NotNil(t, mt.Schema)
		assert.NotNil(t, mt.Schema.Schema)
	})
}

func hasStatus(m map[string]openapi3.ResponseOrRef, status string) bool {
	_, ok := m[status]
	return ok
}
