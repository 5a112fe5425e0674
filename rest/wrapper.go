// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/restspec/restspec"
	"github.com/restspec/restspec/schema"

	"github.com/go-chi/chi/v5"
	"github.com/z5labs/sdk-go/try"
)

type bodyCtxKey struct{}

type queryCtxKey struct{}

type paramsCtxKey struct{}

// BodyValue returns the validated, typed request body attached to the
// context by a [ValidatedHandler].
func BodyValue(ctx context.Context) any {
	return ctx.Value(bodyCtxKey{})
}

// QueryValue returns the validated query values attached to the context
// by a [ValidatedHandler].
func QueryValue(ctx context.Context) any {
	return ctx.Value(queryCtxKey{})
}

// ParamsValue returns the validated path parameters attached to the
// context by a [ValidatedHandler].
func ParamsValue(ctx context.Context) any {
	return ctx.Value(paramsCtxKey{})
}

// errNoFailingCategory guards the unreachable case where validation
// reports failure but no category produced a violation.
var errNoFailingCategory = errors.New("rest: input validation failed without any violations")

type inputResult struct {
	ok         bool
	value      any
	violations []schema.Violation
}

func validateInput(s *schema.Schema, v any) inputResult {
	if s == nil {
		return inputResult{ok: true, value: v}
	}

	typed, violations := s.Validate(v)
	return inputResult{
		ok:         len(violations) == 0,
		value:      typed,
		violations: violations,
	}
}

// ServeHTTP implements the [http.Handler] interface.
//
// Body, query and path parameters are each validated unconditionally;
// when any of them fails, only the first failing category, in the fixed
// priority body, query, params, is reported in the 400 response. On
// success the typed values are attached to the request context and the
// inner handler is invoked. Handler panics are recovered and routed to
// the configured [ErrorHandler].
func (vh *ValidatedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	spanCtx, span := vh.tracer.Start(r.Context(), "ValidatedHandler.ServeHTTP")
	defer span.End()
	r = r.WithContext(spanCtx)

	var err error
	defer func() {
		if err == nil {
			return
		}

		vh.errHandler.OnError(spanCtx, w, err)
	}()
	defer try.Recover(&err)

	var body inputResult
	switch bv := vh.decodeBody(r).(type) {
	case undecodable:
		body = inputResult{violations: []schema.Violation{{Message: bv.message}}}
	default:
		body = validateInput(vh.desc.Body, bv)
	}

	query := validateInput(vh.desc.Query, queryValues(r))
	params := validateInput(vh.desc.Params, pathParams(r))

	for _, res := range []inputResult{body, query, params} {
		if res.ok {
			continue
		}
		if len(res.violations) == 0 {
			err = errNoFailingCategory
			return
		}

		writeValidationError(w, res.violations)
		return
	}

	ctx := context.WithValue(spanCtx, bodyCtxKey{}, body.value)
	ctx = context.WithValue(ctx, queryCtxKey{}, query.value)
	ctx = context.WithValue(ctx, paramsCtxKey{}, params.value)
	r = r.WithContext(ctx)

	if vh.desc.Response == nil || restspec.CurrentMode() == restspec.ModeRelease {
		vh.inner.ServeHTTP(w, r)
		return
	}

	cw := &captureWriter{rw: w}
	vh.inner.ServeHTTP(cw, r)

	// a status only response carries no payload to validate, and a
	// streamed response has already been released
	if !cw.flushed && cw.buf.Len() > 0 {
		vh.checkResponse(ctx, cw.buf.Bytes())
	}

	ferr := cw.flush()
	if ferr != nil {
		vh.log.ErrorContext(ctx, "failed to flush captured response", slog.Any("error", ferr))
	}
}

// decodeBody returns the JSON decoded request body when a body schema is
// declared. A decode failure is returned as a raw value that can never
// validate, carrying the decoder's message.
func (vh *ValidatedHandler) decodeBody(r *http.Request) any {
	if vh.desc.Body == nil {
		return nil
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		return undecodable{message: err.Error()}
	}

	var v any
	err = json.Unmarshal(b, &v)
	if err != nil {
		return undecodable{message: err.Error()}
	}
	return v
}

// undecodable marks a request body that could not be read or parsed.
type undecodable struct {
	message string
}

func queryValues(r *http.Request) map[string]any {
	values := r.URL.Query()
	m := make(map[string]any, len(values))
	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		m[key] = vs[0]
	}
	return m
}

func pathParams(r *http.Request) map[string]any {
	m := make(map[string]any)

	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return m
	}

	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		m[key] = rctx.URLParams.Values[i]
	}
	return m
}

func joinViolations(violations []schema.Violation) string {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func writeValidationError(w http.ResponseWriter, violations []schema.Violation) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	enc := json.NewEncoder(w)
	_ = enc.Encode(map[string]string{
		"error": joinViolations(violations),
	})
}

// checkResponse validates an outgoing JSON payload against the union of
// the declared response schema and the error envelope. Mismatches are
// advisory: one diagnostic is logged and the payload is sent unchanged.
func (vh *ValidatedHandler) checkResponse(ctx context.Context, payload []byte) {
	var v any
	err := json.Unmarshal(payload, &v)
	if err != nil {
		vh.log.WarnContext(ctx, "response is not valid JSON", slog.Any("error", err))
		return
	}

	_, violations := vh.desc.Response.Validate(v)
	if len(violations) == 0 {
		return
	}
	if _, envViolations := errorEnvelope.Validate(v); len(envViolations) == 0 {
		return
	}

	vh.log.WarnContext(
		ctx,
		"response does not match schema",
		slog.String("violations", joinViolations(violations)),
	)
}
