// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package openapi assembles an OpenAPI 3 document from the routes
// recorded by rest.Router and the schemas declared on their handlers.
//
// Assembly is a one shot, synchronous computation: routes are
// discovered, each route's descriptor is read, its schemas are resolved
// against the registry into references or inline values, a full
// response map is synthesized, and the result is fed to the
// swaggest/openapi-go document generator.
package openapi
