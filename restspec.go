// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package restspec provides process wide helpers shared by the schema,
// rest and openapi packages.
package restspec

import (
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Logger returns a named [slog.Logger] which emits records through
// the OpenTelemetry log bridge.
func Logger(name string) *slog.Logger {
	return otelslog.NewLogger(name)
}

// LogHandler returns a named [slog.Handler] which emits records through
// the OpenTelemetry log bridge.
func LogHandler(name string) slog.Handler {
	return otelslog.NewHandler(name)
}

// Mode identifies the process wide runtime mode.
type Mode int32

const (
	// ModeDebug is the default mode. Response bodies written by handlers
	// wrapped with rest.Validated are checked against their declared schema.
	ModeDebug Mode = iota

	// ModeRelease disables response schema checking for performance.
	ModeRelease
)

var mode atomic.Int32

// SetMode sets the process wide runtime mode. It is expected to be called
// once during process start up, before any requests are served.
func SetMode(m Mode) {
	mode.Store(int32(m))
}

// CurrentMode reports the process wide runtime mode.
func CurrentMode() Mode {
	return Mode(mode.Load())
}
