// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint

import (
	"context"
	"net/http"

	"github.com/restspec/restspec/rest"

	"go.opentelemetry.io/otel"
)

type DeleteStore interface {
	Delete(context.Context, int64)
}

// DeletePet serves DELETE /pets/:id.
func DeletePet(store DeleteStore) http.Handler {
	return rest.ValidatedFunc(
		rest.Descriptor{
			Tag:     "pets",
			Summary: "Delete a pet",
			Params:  petParams,
		},
		func(w http.ResponseWriter, r *http.Request) {
			spanCtx, span := otel.Tracer("endpoint").Start(r.Context(), "DeletePet")
			defer span.End()

			id := rest.ParamsValue(spanCtx).(int64)
			store.Delete(spanCtx, id)

			w.WriteHeader(http.StatusNoContent)
		},
	)
}
