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

	"go.opentelemetry.io/otel"
)

type AddStore interface {
	Add(context.Context, pet.Pet) pet.Pet
}

// AddPet serves POST /pets.
func AddPet(store AddStore) http.Handler {
	return rest.ValidatedFunc(
		rest.Descriptor{
			Tag:      "pets",
			Summary:  "Add a new pet",
			Body:     petBody,
			Response: pet.Schema,
		},
		func(w http.ResponseWriter, r *http.Request) {
			spanCtx, span := otel.Tracer("endpoint").Start(r.Context(), "AddPet")
			defer span.End()

			p := rest.BodyValue(spanCtx).(pet.Pet)

			writeJSON(w, http.StatusOK, store.Add(spanCtx, p))
		},
	)
}
