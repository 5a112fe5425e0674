// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"bytes"
	"net/http"
)

// captureWriter buffers everything the inner handler writes so the
// payload can be validated before it is released to the client. Headers
// are shared with the underlying writer; status and body are held back
// until flush. Hijacking is not supported while a response schema is
// being checked.
type captureWriter struct {
	rw      http.ResponseWriter
	buf     bytes.Buffer
	status  int
	flushed bool
}

func (cw *captureWriter) Header() http.Header {
	return cw.rw.Header()
}

func (cw *captureWriter) WriteHeader(status int) {
	if cw.status != 0 {
		return
	}
	cw.status = status
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.flushed {
		return cw.rw.Write(b)
	}
	if cw.status == 0 {
		cw.status = http.StatusOK
	}
	return cw.buf.Write(b)
}

// Flush implements the [http.Flusher] interface. Everything held so far
// is released and the writer becomes a passthrough; a handler that
// streams its response opts out of response checking.
func (cw *captureWriter) Flush() {
	if !cw.flushed {
		if cw.status == 0 {
			cw.status = http.StatusOK
		}
		cw.rw.WriteHeader(cw.status)
		_, _ = cw.rw.Write(cw.buf.Bytes())
		cw.buf.Reset()
		cw.flushed = true
	}

	if f, ok := cw.rw.(http.Flusher); ok {
		f.Flush()
	}
}

// flush releases the held back status and body to the client.
func (cw *captureWriter) flush() error {
	if cw.flushed || cw.status == 0 {
		return nil
	}
	cw.rw.WriteHeader(cw.status)

	_, err := cw.rw.Write(cw.buf.Bytes())
	return err
}
