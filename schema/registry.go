// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import "sync/atomic"

// handleCounter issues process wide unique identity tags so schemas
// stamped by different registries can never be confused for one another.
var handleCounter atomic.Uint64

// Named pairs a component name with the schema registered under it.
type Named struct {
	Name   string
	Schema *Schema
}

// Entry is one named schema registration.
type Entry struct {
	// Name is the component name the schema was registered under.
	Name string

	// Schema is the registered schema.
	Schema *Schema

	// Ref is the document reference for the registered component,
	// e.g. "#/components/schemas/Pet".
	Ref string
}

// Registry holds the named schemas of one document build. Lookup is by
// the identity tag stamped onto each schema at registration time, never
// by structural comparison. A Registry is immutable after construction.
type Registry struct {
	entries  []Entry
	byName   map[string]int
	byHandle map[uint64]int
}

// NewRegistry registers the given (name, schema) pairs in order. Names
// are expected to be unique; when a name is registered twice the later
// registration replaces the earlier one.
//
// A schema is tagged with its identity on first registration and keeps
// that tag for life, so the same schema may be registered with any
// number of registries.
func NewRegistry(named ...Named) *Registry {
	r := &Registry{
		byName:   make(map[string]int, len(named)),
		byHandle: make(map[uint64]int, len(named)),
	}

	for _, n := range named {
		entry := Entry{
			Name:   n.Name,
			Schema: n.Schema,
			Ref:    "#/components/schemas/" + n.Name,
		}

		if n.Schema.handle == 0 {
			n.Schema.handle = handleCounter.Add(1)
		}

		if i, ok := r.byName[n.Name]; ok {
			delete(r.byHandle, r.entries[i].Schema.handle)
			r.entries[i] = entry
			r.byHandle[n.Schema.handle] = i
			continue
		}

		r.byName[n.Name] = len(r.entries)
		r.byHandle[n.Schema.handle] = len(r.entries)
		r.entries = append(r.entries, entry)
	}

	return r
}

// Lookup returns the entry the given schema was registered as, going by
// the identity tag issued at registration time.
func (r *Registry) Lookup(s *Schema) (Entry, bool) {
	if r == nil || s == nil || s.handle == 0 {
		return Entry{}, false
	}

	i, ok := r.byHandle[s.handle]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// LookupName returns the entry registered under name.
func (r *Registry) LookupName(name string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}

	i, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Entries returns the registrations in registration order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	return r.entries
}
