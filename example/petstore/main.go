// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/restspec/restspec"
	"github.com/restspec/restspec/example/petstore/endpoint"
	"github.com/restspec/restspec/example/petstore/pet"
	"github.com/restspec/restspec/openapi"
	"github.com/restspec/restspec/rest"
	"github.com/restspec/restspec/schema"
)

func main() {
	log := restspec.Logger("petstore")

	store := pet.NewStore()

	r := rest.NewRouter()
	r.Handle(http.MethodGet, "/pets", endpoint.ListPets(store))
	r.Handle(http.MethodPost, "/pets", endpoint.AddPet(store))
	r.Handle(http.MethodGet, "/pets/:id", endpoint.FindPet(store))
	r.Handle(http.MethodDelete, "/pets/:id", endpoint.DeletePet(store))

	doc, err := openapi.Assemble(openapi.Config{
		Title:   "Petstore",
		Version: "1.0.0",
		Servers: []string{"http://localhost:8080"},
		Registry: schema.NewRegistry(schema.Named{
			Name:   "Pet",
			Schema: pet.Schema,
		}),
	}, r)
	if err != nil {
		log.Error("failed to assemble openapi document", slog.Any("error", err))
		os.Exit(1)
	}

	api := rest.NewApi(doc, r)

	ln, err := net.Listen("tcp", ":8080")
	if err != nil {
		log.Error("failed to listen", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = rest.Serve(ctx, ln, api)
	if err != nil {
		log.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
