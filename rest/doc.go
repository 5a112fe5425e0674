// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package rest provides an explicitly recorded HTTP router and a request
// validation wrapper which enforces declarative schemas on request bodies,
// query strings, path parameters and response payloads.
//
// Routes registered through [Router] are recorded at registration time so
// the openapi package can recover every route, however deeply nested in
// mounted sub-routers, without introspecting the serving mux.
package rest
