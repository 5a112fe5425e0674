// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pet

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	pets   map[int64]Pet
}

func NewStore() *Store {
	return &Store{
		nextID: 1,
		pets:   make(map[int64]Pet),
	}
}

func (s *Store) Add(ctx context.Context, p Pet) Pet {
	_, span := otel.Tracer("pet").Start(ctx, "Store.Add")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	}
	s.pets[p.ID] = p
	return p
}

func (s *Store) Get(ctx context.Context, id int64) (Pet, bool) {
	_, span := otel.Tracer("pet").Start(ctx, "Store.Get")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.pets[id]
	return p, exists
}

func (s *Store) Delete(ctx context.Context, id int64) {
	_, span := otel.Tracer("pet").Start(ctx, "Store.Delete")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pets, id)
}

func (s *Store) Pets(ctx context.Context) []Pet {
	_, span := otel.Tracer("pet").Start(ctx, "Store.Pets")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	pets := make([]Pet, 0, len(s.pets))
	for _, p := range s.pets {
		pets = append(pets, p)
	}
	return pets
}
