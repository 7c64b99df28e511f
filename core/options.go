package core

import (
	"log/slog"
	"time"

	"github.com/searchktools/serwer/core/observability"
	"github.com/searchktools/serwer/core/static"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHost sets the address Listen binds.
func WithHost(host string) Option {
	return func(e *Engine) {
		e.host = host
	}
}

// WithWorkers fixes the worker count; n <= 0 means one worker per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithPublic serves files from dir when no route matches.
func WithPublic(dir *static.Dir) Option {
	return func(e *Engine) {
		e.public = dir
	}
}

// WithReadTimeout bounds reading one request. Zero disables the deadline.
func WithReadTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.readTimeout = d
	}
}

// WithWriteTimeout bounds writing one response. Zero disables the deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.writeTimeout = d
	}
}

// WithReusePort sets SO_REUSEPORT on the listening socket where supported.
func WithReusePort(enabled bool) Option {
	return func(e *Engine) {
		e.reusePort = enabled
	}
}

// WithMonitor shares a monitor between engines or with the caller.
func WithMonitor(m *observability.Monitor) Option {
	return func(e *Engine) {
		if m != nil {
			e.monitor = m
		}
	}
}
