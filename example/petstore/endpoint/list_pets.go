// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint

import (
	"context"
	"net/http"

	"github.com/restspec/restspec/example/petstore/pet"
	"github.com/restspec/restspec/rest"
	"github.com/restspec/restspec/schema"

	"go.opentelemetry.io/otel"
)

type ListStore interface {
	Pets(context.Context) []pet.Pet
}

// ListPets serves GET /pets.
func ListPets(store ListStore) http.Handler {
	return rest.ValidatedFunc(
		rest.Descriptor{
			Tag:      "pets",
			Summary:  "List all pets",
			Response: schema.Array(pet.Schema),
		},
		func(w http.ResponseWriter, r *http.Request) {
			spanCtx, span := otel.Tracer("endpoint").Start(r.Context(), "ListPets")
			defer span.End()

			writeJSON(w, http.StatusOK, store.Pets(spanCtx))
		},
	)
}
