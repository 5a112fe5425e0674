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

type FindStore interface {
	Get(context.Context, int64) (pet.Pet, bool)
}

// FindPet serves GET /pets/:id.
func FindPet(store FindStore) http.Handler {
	return rest.ValidatedFunc(
		rest.Descriptor{
			Tag:      "pets",
			Summary:  "Find a pet by its id",
			Params:   petParams,
			Response: pet.Schema,
		},
		func(w http.ResponseWriter, r *http.Request) {
			spanCtx, span := otel.Tracer("endpoint").Start(r.Context(), "FindPet")
			defer span.End()

			id := rest.ParamsValue(spanCtx).(int64)

			p, found := store.Get(spanCtx, id)
			if !found {
				writeError(w, http.StatusNotFound, "pet not found")
				return
			}

			writeJSON(w, http.StatusOK, p)
		},
	)
}
