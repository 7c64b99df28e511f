package router

import (
	"github.com/searchktools/serwer/core/http"
)

// Handler fills in the response for a matched request. Handlers are shared by
// every worker and must be safe for concurrent use.
type Handler interface {
	Handle(req *http.Request, res *http.Response)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(req *http.Request, res *http.Response)

func (f HandlerFunc) Handle(req *http.Request, res *http.Response) {
	f(req, res)
}

// Action runs a handler against a fresh response carrying the request's version.
type Action struct {
	handler Handler
}

func NewAction(h Handler) Action {
	return Action{handler: h}
}

func (a Action) Handler() Handler {
	return a.handler
}

// Run invokes the handler and returns the response it built.
func (a Action) Run(req *http.Request) *http.Response {
	res := http.NewResponse(req.Version())
	a.handler.Handle(req, res)
	return res
}

// Route binds a method and a compiled path pattern to an action.
type Route struct {
	method  http.Method
	pattern http.Path
	action  Action
}

// NewRoute compiles pattern, so a malformed pattern fails at registration
// rather than on the first request.
func NewRoute(method http.Method, pattern string, h Handler) (*Route, error) {
	if f, ok := h.(HandlerFunc); h == nil || ok && f == nil {
		return nil, ErrNilHandler
	}
	p, err := http.ParsePath(pattern)
	if err != nil {
		return nil, err
	}
	return &Route{method: method, pattern: p, action: NewAction(h)}, nil
}

func (r *Route) Method() http.Method { return r.method }
func (r *Route) Pattern() http.Path  { return r.pattern }
func (r *Route) Action() Action      { return r.action }
func (r *Route) String() string      { return r.method.String() + " " + r.pattern.String() }

// Match reports whether the route accepts a request with the given method and
// path, returning the parameter bindings on success.
func (r *Route) Match(method http.Method, path http.Path) (http.Params, bool) {
	if !r.method.Matches(method) {
		return http.Params{}, false
	}
	ok, params := r.pattern.Matches(path)
	if !ok {
		return http.Params{}, false
	}
	return params, true
}

// conflicts reports whether both routes would claim the same requests under
// the same method token. Parameter names do not count: /user/<id> and
// /user/<name> accept the same paths, so the later one could never run.
func (r *Route) conflicts(other *Route) bool {
	return r.method == other.method && r.pattern.SameShape(other.pattern)
}
