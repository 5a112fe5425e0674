// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/restspec/restspec/example/petstore/pet"
	"github.com/restspec/restspec/rest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodyOf(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func petsRouter(store *pet.Store) *rest.Router {
	r := rest.NewRouter()
	r.Handle(http.MethodGet, "/pets", ListPets(store))
	r.Handle(http.MethodPost, "/pets", AddPet(store))
	r.Handle(http.MethodGet, "/pets/:id", FindPet(store))
	r.Handle(http.MethodDelete, "/pets/:id", DeletePet(store))
	return r
}

func TestFindPet(t *testing.T) {
	t.Run("returns a stored pet", func(t *testing.T) {
		store := pet.NewStore()
		added := store.Add(context.Background(), pet.Pet{Name: "rex"})

		r := petsRouter(store)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/1", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var got pet.Pet
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, added, got)
	})

	t.Run("responds with 404 for an unknown pet", func(t *testing.T) {
		r := petsRouter(pet.NewStore())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/99", nil))

		require.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "pet not found", body["error"])
	})

	t.Run("rejects a non numeric id", func(t *testing.T) {
		r := petsRouter(pet.NewStore())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/rex", nil))

		require.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "id must be an integer", body["error"])
	})
}

func TestAddPet(t *testing.T) {
	t.Run("stores and echoes the pet", func(t *testing.T) {
		store := pet.NewStore()
		r := petsRouter(store)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pets", bodyOf(t, pet.Pet{Name: "rex"}))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got pet.Pet
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "rex", got.Name)
		assert.NotZero(t, got.ID)

		_, found := store.Get(context.Background(), got.ID)
		assert.True(t, found)
	})

	t.Run("rejects a pet without a name", func(t *testing.T) {
		r := petsRouter(pet.NewStore())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pets", bodyOf(t, map[string]any{"tag": "dog"}))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeletePet(t *testing.T) {
	t.Run("removes the pet", func(t *testing.T) {
		store := pet.NewStore()
		added := store.Add(context.Background(), pet.Pet{Name: "rex"})

		r := petsRouter(store)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/pets/1", nil))

		require.Equal(t, http.StatusNoContent, w.Code)

		_, found := store.Get(context.Background(), added.ID)
		assert.False(t, found)
	})
}
