// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package endpoint implements the petstore routes.
package endpoint

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/restspec/restspec/example/petstore/pet"
	"github.com/restspec/restspec/schema"
)

// petBody validates a request body against the Pet shape and hands the
// handler a typed pet.Pet. The declared origin keeps the documented body
// a reference to the Pet component.
var petBody = schema.Transform(pet.Schema, func(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var p pet.Pet
	err = json.Unmarshal(b, &p)
	if err != nil {
		return nil, err
	}
	return p, nil
}).DeclareOrigin("Pet")

// petParams converts the ":id" path parameter into an int64.
var petParams = schema.Transform(
	schema.Object(map[string]*schema.Schema{
		"id": schema.String(),
	}, "id"),
	func(v any) (any, error) {
		m := v.(map[string]any)

		id, err := strconv.ParseInt(m["id"].(string), 10, 64)
		if err != nil {
			return nil, errors.New("id must be an integer")
		}
		return id, nil
	},
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
