// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"log/slog"
	"net/http"

	"github.com/restspec/restspec"
	"github.com/restspec/restspec/schema"

	"github.com/swaggest/openapi-go/openapi3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Descriptor declares the documented and validated shape of one route.
// It is attached to a terminal handler with [Validated] and read back by
// the openapi package when assembling the specification document.
//
// All fields are optional; absent schemas mean the corresponding part of
// the request or response is neither documented nor validated.
type Descriptor struct {
	// Tag groups the operation in the document. Routes without a tag
	// fall under the assembler's default tag.
	Tag string

	// Summary is a short description of the operation.
	Summary string

	// Description is a longer description of the operation.
	Description string

	// Security names a security scheme the operation requires.
	Security string

	// Body describes the JSON request body.
	Body *schema.Schema

	// Query describes the query string as an object of scalar values.
	Query *schema.Schema

	// Params describes the path parameters as an object whose
	// properties correspond to ":name" placeholders in the pattern.
	Params *schema.Schema

	// Response describes the JSON response body.
	Response *schema.Schema

	// ContentType declares a non-JSON response body. When set, the
	// operation documents an opaque 200 response of this content type
	// and Response is ignored.
	ContentType string

	// Deprecated marks the operation as deprecated in the document.
	Deprecated bool

	// Finalize, when set, is applied to the generated operation right
	// before it is added to the document.
	Finalize func(*openapi3.Operation)
}

// errorEnvelope is the fixed shape of every synthesized error response.
var errorEnvelope = schema.Object(map[string]*schema.Schema{
	"error": schema.String(),
}, "error")

// ErrorEnvelope returns the fixed error response schema used for
// synthesized 400/401/403/404 responses and for outbound response
// validation.
func ErrorEnvelope() *schema.Schema {
	return errorEnvelope
}

// ValidatedOptions holds configuration for a [ValidatedHandler].
type ValidatedOptions struct {
	errHandler ErrorHandler
	logHandler slog.Handler
}

// ValidatedOption configures a handler wrapped by [Validated].
type ValidatedOption func(*ValidatedOptions)

// OnError configures a custom [ErrorHandler] for the wrapped handler.
// If not specified, a default handler logs the error and responds with
// an appropriate status code.
func OnError(eh ErrorHandler) ValidatedOption {
	return func(vo *ValidatedOptions) {
		vo.errHandler = eh
	}
}

// LogHandler configures the [slog.Handler] which receives the wrapper's
// diagnostics, most notably response schema mismatches.
func LogHandler(h slog.Handler) ValidatedOption {
	return func(vo *ValidatedOptions) {
		vo.logHandler = h
	}
}

// ValidatedHandler decorates an [http.Handler] with two phase schema
// validation: inbound body/query/params validation before the handler
// runs and advisory outbound response validation after it returns.
type ValidatedHandler struct {
	desc       Descriptor
	tracer     trace.Tracer
	errHandler ErrorHandler
	log        *slog.Logger
	inner      http.Handler
}

// Validated wraps h with the validation behaviour declared by d.
func Validated(d Descriptor, h http.Handler, opts ...ValidatedOption) *ValidatedHandler {
	vo := &ValidatedOptions{
		logHandler: restspec.LogHandler("rest"),
	}
	for _, opt := range opts {
		opt(vo)
	}
	if vo.errHandler == nil {
		vo.errHandler = defaultErrorHandler(vo.logHandler)
	}

	return &ValidatedHandler{
		desc:       d,
		tracer:     otel.Tracer("github.com/restspec/restspec/rest"),
		errHandler: vo.errHandler,
		log:        slog.New(vo.logHandler),
		inner:      h,
	}
}

// ValidatedFunc wraps an ordinary function with [Validated].
func ValidatedFunc(d Descriptor, f http.HandlerFunc, opts ...ValidatedOption) *ValidatedHandler {
	return Validated(d, f, opts...)
}

// DescriptorOf returns the [Descriptor] attached to a terminal handler,
// or false when the handler was registered without [Validated].
func DescriptorOf(h http.Handler) (*Descriptor, bool) {
	vh, ok := h.(*ValidatedHandler)
	if !ok {
		return nil, false
	}
	return &vh.desc, true
}
