// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Handle(t *testing.T) {
	t.Run("serves a registered route", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc(http.MethodGet, "/pets", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("binds path placeholders", func(t *testing.T) {
		var id string
		r := NewRouter()
		r.HandleFunc(http.MethodGet, "/pets/:id", func(w http.ResponseWriter, req *http.Request) {
			id = chi.URLParam(req, "id")
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/42", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", id)
	})

	t.Run("records registrations in order", func(t *testing.T) {
		r := NewRouter()
		r.HandleFunc(http.MethodGet, "/pets", func(http.ResponseWriter, *http.Request) {})
		r.HandleFunc(http.MethodPost, "/pets", func(http.ResponseWriter, *http.Request) {})

		entries := r.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, http.MethodGet, entries[0].Method)
		assert.Equal(t, http.MethodPost, entries[1].Method)
		assert.Equal(t, "/pets", entries[0].Pattern)
		assert.NotNil(t, entries[0].Handler)
		assert.Nil(t, entries[0].Sub)
	})
}

func TestRouter_Mount(t *testing.T) {
	t.Run("serves mounted routes under the prefix", func(t *testing.T) {
		sub := NewRouter()
		sub.HandleFunc(http.MethodGet, "/pets/:id", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r := NewRouter()
		r.Mount("/v1", sub)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pets/42", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("records the mount with its sub-router", func(t *testing.T) {
		sub := NewRouter()
		r := NewRouter()
		r.Mount("/v1", sub)

		entries := r.Entries()
		require.Len(t, entries, 1)
		assert.Empty(t, entries[0].Method)
		assert.Equal(t, "/v1", entries[0].Pattern)
		assert.Same(t, sub, entries[0].Sub)
	})
}

func TestMuxPattern(t *testing.T) {
	assert.Equal(t, "/pets", muxPattern("/pets"))
	assert.Equal(t, "/pets/{id}", muxPattern("/pets/:id"))
	assert.Equal(t, "/{a}/{b}", muxPattern("/:a/:b"))

	// only whole segments are placeholders
	assert.Equal(t, "/id/{id}", muxPattern("/id/:id"))
	assert.Equal(t, "/a:b", muxPattern("/a:b"))
}
