package middleware

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/searchktools/serwer/core/http"
	"github.com/searchktools/serwer/core/router"
)

// Middleware wraps a handler. Not calling next aborts the chain; the
// response built so far is sent as is.
type Middleware func(next router.Handler) router.Handler

// Pipeline is an ordered list of middlewares applied around route handlers.
type Pipeline struct {
	middlewares []Middleware
}

// NewPipeline creates a new middleware pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Use appends middlewares; the first one added runs outermost.
func (p *Pipeline) Use(mw ...Middleware) *Pipeline {
	p.middlewares = append(p.middlewares, mw...)
	return p
}

func (p *Pipeline) Len() int {
	return len(p.middlewares)
}

// Then wraps final with every middleware in the pipeline.
func (p *Pipeline) Then(final router.Handler) router.Handler {
	h := final
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		h = p.middlewares[i](h)
	}
	return h
}

// RequestID numbers each request in the X-Request-Id response header,
// reusing the client's value when one is sent.
func RequestID() Middleware {
	var counter atomic.Uint64

	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *http.Request, res *http.Response) {
			id, ok := req.Header("X-Request-Id")
			if !ok {
				id = strconv.FormatUint(counter.Add(1), 10)
			}
			res.SetHeader("X-Request-Id", id)
			next.Handle(req, res)
		})
	}
}

// CORS adds permissive CORS headers and answers preflight OPTIONS requests with 204.
func CORS(methods ...http.Method) Middleware {
	if len(methods) == 0 {
		methods = []http.Method{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	}
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.String()
	}
	allow := strings.Join(names, ", ")

	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *http.Request, res *http.Response) {
			res.SetHeader("Access-Control-Allow-Origin", "*").
				SetHeader("Access-Control-Allow-Methods", allow).
				SetHeader("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if req.Method() == http.MethodOptions {
				res.SetStatus(http.StatusNoContent)
				return
			}
			next.Handle(req, res)
		})
	}
}

// RateLimiter allows requestsPerSecond requests per one-second window and
// answers the rest with 429.
func RateLimiter(requestsPerSecond int) Middleware {
	var (
		mu         sync.Mutex
		tokens     = requestsPerSecond
		lastRefill = time.Now()
	)

	take := func() bool {
		mu.Lock()
		defer mu.Unlock()
		if now := time.Now(); now.Sub(lastRefill) >= time.Second {
			tokens = requestsPerSecond
			lastRefill = now
		}
		if tokens > 0 {
			tokens--
			return true
		}
		return false
	}

	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *http.Request, res *http.Response) {
			if !take() {
				res.SetHeader("Retry-After", "1").Set(http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.Handle(req, res)
		})
	}
}
