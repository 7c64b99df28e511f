package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/searchktools/serwer/core/http"
	"github.com/searchktools/serwer/core/middleware"
	"github.com/searchktools/serwer/core/observability"
	"github.com/searchktools/serwer/core/pools"
	"github.com/searchktools/serwer/core/router"
	"github.com/searchktools/serwer/core/static"
)

// Engine accepts connections on one goroutine and hands each to a fixed
// worker pool, where it is parsed, routed, answered and closed. Every
// connection carries exactly one request.
type Engine struct {
	routes     *router.Table
	middleware *middleware.Pipeline
	buffers    *pools.BufferPool
	monitor    *observability.Monitor
	logger     *slog.Logger

	host         string
	workers      int
	public       *static.Dir
	readTimeout  time.Duration
	writeTimeout time.Duration
	reusePort    bool

	mu       sync.Mutex
	listener net.Listener
	pool     *pools.WorkerPool
	closed   bool
}

// NewEngine creates an engine with no routes.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		routes:     router.NewTable(),
		middleware: middleware.NewPipeline(),
		buffers:    pools.NewBufferPool(),
		monitor:    observability.NewMonitor(),
		logger:     slog.Default(),
		host:       DefaultHost,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetPublicDir enables the static fallback for files under path.
func (e *Engine) SetPublicDir(path string) error {
	dir, err := static.New(path)
	if err != nil {
		return err
	}
	e.public = dir
	return nil
}

// Use appends middlewares that wrap every route handler. The static
// fallback and the 400/404 replies bypass them. Call before serving starts.
func (e *Engine) Use(mw ...middleware.Middleware) {
	e.middleware.Use(mw...)
}

// Register adds a route. Routes must be registered before serving starts.
func (e *Engine) Register(method http.Method, pattern string, h router.Handler) error {
	route, err := e.routes.Handle(method, pattern, h)
	if err != nil {
		return err
	}
	e.logger.Debug("route registered", "route", route.String())
	return nil
}

// mustRegister panics on a malformed or duplicate route: both are
// programming errors that should stop startup.
func (e *Engine) mustRegister(method http.Method, pattern string, h router.HandlerFunc) {
	if err := e.Register(method, pattern, h); err != nil {
		panic(fmt.Sprintf("serwer: register %s %s: %v", method, pattern, err))
	}
}

// GET registers a GET route
func (e *Engine) GET(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodGet, pattern, h)
}

// HEAD registers a HEAD route
func (e *Engine) HEAD(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodHead, pattern, h)
}

// POST registers a POST route
func (e *Engine) POST(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodPost, pattern, h)
}

// PUT registers a PUT route
func (e *Engine) PUT(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodPut, pattern, h)
}

// DELETE registers a DELETE route
func (e *Engine) DELETE(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodDelete, pattern, h)
}

// CONNECT registers a CONNECT route
func (e *Engine) CONNECT(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodConnect, pattern, h)
}

// OPTIONS registers an OPTIONS route
func (e *Engine) OPTIONS(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodOptions, pattern, h)
}

// TRACE registers a TRACE route
func (e *Engine) TRACE(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodTrace, pattern, h)
}

// PATCH registers a PATCH route
func (e *Engine) PATCH(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodPatch, pattern, h)
}

// ALL registers a route that accepts every method
func (e *Engine) ALL(pattern string, h router.HandlerFunc) {
	e.mustRegister(http.MethodAll, pattern, h)
}

// Listen binds host:port and serves until Close is called.
func (e *Engine) Listen(port int) error {
	addr := net.JoinHostPort(e.host, strconv.Itoa(port))
	ln, err := listenConfig(e.reusePort).Listen(context.Background(), "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return e.Serve(ln)
}

// Serve accepts connections from ln until Close is called, then waits for
// queued connections to finish. It always returns a non-nil error; after
// Close that error is ErrEngineClosed.
func (e *Engine) Serve(ln net.Listener) error {
	e.mu.Lock()
	switch {
	case e.closed:
		e.mu.Unlock()
		ln.Close()
		return ErrEngineClosed
	case e.listener != nil:
		e.mu.Unlock()
		return ErrAlreadyServing
	}
	e.listener = ln
	e.pool = pools.NewWorkerPool(e.workers)
	pool := e.pool
	e.mu.Unlock()

	defer func() {
		pool.Close()
		pool.Wait()
	}()

	e.logger.Info("serwer listening",
		"addr", ln.Addr().String(),
		"workers", pool.Stats().NumWorkers,
		"routes", e.routes.Len(),
		"public", e.publicRoot(),
	)

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if e.isClosed() {
				return ErrEngineClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				backoff = min(max(2*backoff, 5*time.Millisecond), time.Second)
				e.logger.Warn("accept failed, retrying", "err", err, "backoff", backoff)
				time.Sleep(backoff)
				continue
			}
			return err
		}
		backoff = 0

		e.monitor.RecordConnection()
		if !pool.Submit(func() { e.serveConn(conn) }) {
			conn.Close()
		}
	}
}

// Close stops accepting connections. Serve returns once queued work drains.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.listener != nil {
		return e.listener.Close()
	}
	return nil
}

// Addr returns the listening address, or nil before serving starts.
func (e *Engine) Addr() net.Addr {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listener == nil {
		return nil
	}
	return e.listener.Addr()
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Engine) publicRoot() string {
	if e.public == nil {
		return ""
	}
	return e.public.Root()
}

// serveConn runs on a worker: read one request, answer it, close.
func (e *Engine) serveConn(conn net.Conn) {
	defer conn.Close()

	start := time.Now()
	remote := conn.RemoteAddr().String()

	if e.readTimeout > 0 {
		conn.SetReadDeadline(start.Add(e.readTimeout))
	}
	res, req, route := e.handle(bufio.NewReader(conn))

	if e.writeTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(e.writeTimeout))
	}
	buf := e.buffers.Get(len(res.Body()) + 256)
	*buf = res.AppendTo(*buf)
	n, err := conn.Write(*buf)
	e.buffers.Put(buf)
	e.monitor.RecordWrite(n)

	if req == nil {
		return
	}

	elapsed := time.Since(start)
	e.monitor.RecordRequest(route, elapsed, res.Status() >= http.StatusBadRequest)
	if err != nil {
		e.logger.Warn("write response",
			"remote", remote,
			"method", req.Method().String(),
			"path", req.Path().String(),
			"err", err,
		)
		return
	}
	e.logger.Debug("request",
		"remote", remote,
		"method", req.Method().String(),
		"path", req.Path().String(),
		"route", route,
		"status", int(res.Status()),
		"duration", elapsed,
	)
}

// handle parses one request and produces its response. req is nil when the
// request could not be parsed; route is the key the request is counted under.
func (e *Engine) handle(r *bufio.Reader) (res *http.Response, req *http.Request, route string) {
	req, err := http.ReadRequest(r)
	if err != nil {
		e.monitor.RecordBadRequest()
		e.logger.Debug("bad request", "err", err, "framing", http.IsFraming(err))
		return http.NewResponse(http.HTTP11).SetStatus(http.StatusBadRequest), nil, ""
	}

	matched, params, ok := e.routes.Find(req.Method(), req.Path())
	if !ok {
		return e.fallback(req), req, observability.Unmatched
	}

	req.BindParams(params)
	return e.run(matched, req), req, matched.String()
}

// run invokes the route's action, turning a handler panic into a 500.
func (e *Engine) run(route *router.Route, req *http.Request) (res *http.Response) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("handler panicked",
				"route", route.String(),
				"path", req.Path().String(),
				"panic", r,
			)
			res = http.NewResponse(req.Version()).SetStatus(http.StatusInternalServerError)
		}
	}()
	if e.middleware.Len() == 0 {
		return route.Action().Run(req)
	}
	return router.NewAction(e.middleware.Then(route.Action().Handler())).Run(req)
}

// fallback answers an unmatched request from the public directory, or 404.
func (e *Engine) fallback(req *http.Request) *http.Response {
	if e.public != nil {
		res := http.NewResponse(req.Version())
		err := e.public.Serve(req, res)
		if err == nil {
			return res
		}
		if !errors.Is(err, static.ErrNotFound) && !errors.Is(err, static.ErrOutsideRoot) {
			e.logger.Warn("static file", "path", req.Path().String(), "err", err)
		}
	}
	return http.NewResponse(http.HTTP11).SetStatus(http.StatusNotFound)
}
