// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// ServeOptions holds configuration for [Serve].
type ServeOptions struct {
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	maxHeaderBytes    int
}

// ServeOption configures the underlying [http.Server] used by [Serve].
type ServeOption func(*ServeOptions)

// ReadTimeout sets the maximum duration for reading the entire request,
// including the body. The default is 5 seconds.
func ReadTimeout(d time.Duration) ServeOption {
	return func(so *ServeOptions) {
		so.readTimeout = d
	}
}

// ReadHeaderTimeout sets the maximum duration for reading request
// headers. The default is 2 seconds.
func ReadHeaderTimeout(d time.Duration) ServeOption {
	return func(so *ServeOptions) {
		so.readHeaderTimeout = d
	}
}

// WriteTimeout sets the maximum duration before timing out writes of the
// response. The default is 10 seconds.
func WriteTimeout(d time.Duration) ServeOption {
	return func(so *ServeOptions) {
		so.writeTimeout = d
	}
}

// IdleTimeout sets the maximum duration to wait for the next request
// when keep-alives are enabled. The default is 120 seconds.
func IdleTimeout(d time.Duration) ServeOption {
	return func(so *ServeOptions) {
		so.idleTimeout = d
	}
}

// MaxHeaderBytes sets the maximum number of bytes the server will read
// parsing request headers. The default is 1 MB.
func MaxHeaderBytes(n int) ServeOption {
	return func(so *ServeOptions) {
		so.maxHeaderBytes = n
	}
}

// Serve serves h on ln until ctx is cancelled, then shuts the server
// down gracefully, waiting for in flight requests to complete. It
// returns nil on a clean shutdown.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, opts ...ServeOption) error {
	so := &ServeOptions{
		readTimeout:       5 * time.Second,
		readHeaderTimeout: 2 * time.Second,
		writeTimeout:      10 * time.Second,
		idleTimeout:       120 * time.Second,
		maxHeaderBytes:    1 << 20,
	}
	for _, opt := range opts {
		opt(so)
	}

	srv := &http.Server{
		Handler:           h,
		ReadTimeout:       so.readTimeout,
		ReadHeaderTimeout: so.readHeaderTimeout,
		WriteTimeout:      so.writeTimeout,
		IdleTimeout:       so.idleTimeout,
		MaxHeaderBytes:    so.maxHeaderBytes,
	}

	p := pool.New().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		return srv.Serve(ln)
	})

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})

	err := p.Wait()
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
