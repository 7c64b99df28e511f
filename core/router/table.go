package router

import (
	"errors"
	"fmt"
	"sync"

	"github.com/searchktools/serwer/core/http"
)

var (
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrNilHandler     = errors.New("nil handler")
)

// Table holds registered routes in registration order. Writes happen during
// setup; workers take the read lock once per request.
type Table struct {
	mu     sync.RWMutex
	routes []*Route
}

func NewTable() *Table {
	return &Table{}
}

// Add appends a route, rejecting one whose method and pattern are already registered.
func (t *Table) Add(route *Route) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.routes {
		if existing.conflicts(route) {
			return fmt.Errorf("%w: %s", ErrDuplicateRoute, route)
		}
	}
	t.routes = append(t.routes, route)
	return nil
}

// Handle compiles and adds a route in one step.
func (t *Table) Handle(method http.Method, pattern string, h Handler) (*Route, error) {
	route, err := NewRoute(method, pattern, h)
	if err != nil {
		return nil, err
	}
	if err := t.Add(route); err != nil {
		return nil, err
	}
	return route, nil
}

// Find returns the first route, in registration order, that accepts the
// request method and path.
func (t *Table) Find(method http.Method, path http.Path) (*Route, http.Params, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, route := range t.routes {
		if params, ok := route.Match(method, path); ok {
			return route, params, true
		}
	}
	return nil, http.Params{}, false
}

// Routes returns a snapshot of the registered routes.
func (t *Table) Routes() []*Route {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}
