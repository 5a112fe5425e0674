// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package openapi

import (
	"net/http"

	"github.com/restspec/restspec/rest"

	"github.com/swaggest/openapi-go/openapi3"
)

// synthesizeResponses builds the full response map for one route. It is
// a pure function of the descriptor and the caller supplied 401/403
// descriptions:
//
//   - 401 and 403 are emitted if and only if a description was supplied.
//   - 404 is emitted if and only if the route declares path parameters.
//   - 400 is emitted if and only if the route validates its query or body.
//   - Exactly one of: an opaque 200 for a declared content type, a JSON
//     200 from the resolved response schema, or a bare 204.
func synthesizeResponses(d *rest.Descriptor, response *resolved, errDescriptions map[int]string) map[string]openapi3.ResponseOrRef {
	responses := make(map[string]openapi3.ResponseOrRef)

	if desc, ok := errDescriptions[http.StatusUnauthorized]; ok {
		responses["401"] = envelopeResponse(desc)
	}
	if desc, ok := errDescriptions[http.StatusForbidden]; ok {
		responses["403"] = envelopeResponse(desc)
	}
	if d.Params != nil {
		responses["404"] = envelopeResponse("Not Found")
	}
	if d.Query != nil || d.Body != nil {
		responses["400"] = envelopeResponse("Bad Request")
	}

	switch {
	case d.ContentType != "":
		responses["200"] = openapi3.ResponseOrRef{
			Response: &openapi3.Response{
				Description: "OK",
				Content: map[string]openapi3.MediaType{
					d.ContentType: {},
				},
			},
		}
	case response != nil:
		sor := response.schemaOrRef()
		responses["200"] = openapi3.ResponseOrRef{
			Response: &openapi3.Response{
				Description: "OK",
				Content: map[string]openapi3.MediaType{
					"application/json": {Schema: &sor},
				},
			},
		}
	default:
		responses["204"] = openapi3.ResponseOrRef{
			Response: &openapi3.Response{
				Description: "No Content",
			},
		}
	}

	return responses
}

// envelopeResponse is a JSON response of the fixed error envelope shape.
func envelopeResponse(description string) openapi3.ResponseOrRef {
	var sor openapi3.SchemaOrRef
	js := rest.ErrorEnvelope().JSONSchema()
	sor.FromJSONSchema(js.ToSchemaOrBool())

	return openapi3.ResponseOrRef{
		Response: &openapi3.Response{
			Description: description,
			Content: map[string]openapi3.MediaType{
				"application/json": {Schema: &sor},
			},
		},
	}
}
