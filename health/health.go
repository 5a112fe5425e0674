// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package health provides monitors backing the liveness and readiness
// probe endpoints served by rest.Api.
package health

import (
	"context"
	"sync/atomic"
)

// Monitor represents anything which can report its current state of health.
type Monitor interface {
	Healthy(context.Context) (bool, error)
}

// Binary is a [Monitor] with exactly 2 states: healthy or unhealthy.
// It is safe for concurrent use. The zero value reports unhealthy.
type Binary struct {
	healthy atomic.Bool
}

// MarkHealthy changes the state to healthy.
func (b *Binary) MarkHealthy() {
	b.healthy.Store(true)
}

// MarkUnhealthy changes the state to unhealthy.
func (b *Binary) MarkUnhealthy() {
	b.healthy.Store(false)
}

// Healthy implements the [Monitor] interface.
func (b *Binary) Healthy(ctx context.Context) (bool, error) {
	return b.healthy.Load(), nil
}

// All is a collection of [Monitor]s which reports healthy only when
// every member does. It fails fast on the first unhealthy member or error.
type All []Monitor

// Healthy implements the [Monitor] interface.
func (a All) Healthy(ctx context.Context) (bool, error) {
	for _, m := range a {
		healthy, err := m.Healthy(ctx)
		if !healthy || err != nil {
			return healthy, err
		}
	}
	return true, nil
}
