package router

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/searchktools/serwer/core/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(*http.Request, *http.Response) {}

func mustPath(t testing.TB, raw string) http.Path {
	t.Helper()
	p, err := http.ParsePath(raw)
	require.NoError(t, err)
	return p
}

func mustRequest(t testing.TB, raw string) *http.Request {
	t.Helper()
	req, err := http.RequestFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return req
}

func TestNewRouteRejectsMalformedPattern(t *testing.T) {
	for _, pattern := range []string{"user", "/user/", "/a//b", "/user/<id>/<id>", "/<>", "/<id"} {
		_, err := NewRoute(http.MethodGet, pattern, HandlerFunc(noop))
		assert.Error(t, err, pattern)
	}

	_, err := NewRoute(http.MethodGet, "/", nil)
	require.ErrorIs(t, err, ErrNilHandler)
}

func TestTableStaticRoutes(t *testing.T) {
	table := NewTable()
	for _, pattern := range []string{"/", "/hello", "/hello/world"} {
		_, err := table.Handle(http.MethodGet, pattern, HandlerFunc(noop))
		require.NoError(t, err)
	}

	tests := []struct {
		path        string
		shouldMatch bool
	}{
		{"/", true},
		{"/hello", true},
		{"/hello/world", true},
		{"/notfound", false},
		{"/hello/world/again", false},
	}
	for _, tt := range tests {
		_, _, ok := table.Find(http.MethodGet, mustPath(t, tt.path))
		assert.Equal(t, tt.shouldMatch, ok, tt.path)
	}
}

func TestTableBindsParams(t *testing.T) {
	table := NewTable()
	_, err := table.Handle(http.MethodGet, "/user/<id>/post/<post>", HandlerFunc(noop))
	require.NoError(t, err)

	route, params, ok := table.Find(http.MethodGet, mustPath(t, "/user/42/post/7"))
	require.True(t, ok)
	assert.Equal(t, "GET /user/<id>/post/<post>", route.String())
	assert.Equal(t, map[string]string{"id": "42", "post": "7"}, params.All())
}

func TestTableRegistrationOrder(t *testing.T) {
	table := NewTable()
	admin, err := table.Handle(http.MethodGet, "/user/admin", HandlerFunc(noop))
	require.NoError(t, err)
	byID, err := table.Handle(http.MethodGet, "/user/<id>", HandlerFunc(noop))
	require.NoError(t, err)

	route, _, ok := table.Find(http.MethodGet, mustPath(t, "/user/admin"))
	require.True(t, ok)
	assert.Same(t, admin, route)

	route, params, ok := table.Find(http.MethodGet, mustPath(t, "/user/7"))
	require.True(t, ok)
	assert.Same(t, byID, route)
	id, _ := params.Get("id")
	assert.Equal(t, "7", id)
}

func TestTableMethods(t *testing.T) {
	table := NewTable()
	_, err := table.Handle(http.MethodPost, "/task", HandlerFunc(noop))
	require.NoError(t, err)
	_, err = table.Handle(http.MethodAll, "/any", HandlerFunc(noop))
	require.NoError(t, err)

	_, _, ok := table.Find(http.MethodGet, mustPath(t, "/task"))
	assert.False(t, ok)
	_, _, ok = table.Find(http.MethodPost, mustPath(t, "/task"))
	assert.True(t, ok)

	for _, m := range []http.Method{http.MethodGet, http.MethodDelete, http.MethodPatch} {
		_, _, ok = table.Find(m, mustPath(t, "/any"))
		assert.True(t, ok, m.String())
	}
}

func TestTableDuplicateRoute(t *testing.T) {
	table := NewTable()
	_, err := table.Handle(http.MethodGet, "/user/<id>", HandlerFunc(noop))
	require.NoError(t, err)

	_, err = table.Handle(http.MethodGet, "/user/<id>", HandlerFunc(noop))
	require.ErrorIs(t, err, ErrDuplicateRoute)

	// a renamed parameter accepts the same paths
	_, err = table.Handle(http.MethodGet, "/user/<name>", HandlerFunc(noop))
	require.ErrorIs(t, err, ErrDuplicateRoute)

	// a literal in place of the parameter, a different method and ALL are distinct registrations
	_, err = table.Handle(http.MethodGet, "/user/me", HandlerFunc(noop))
	require.NoError(t, err)
	_, err = table.Handle(http.MethodPost, "/user/<id>", HandlerFunc(noop))
	require.NoError(t, err)
	_, err = table.Handle(http.MethodAll, "/user/<id>", HandlerFunc(noop))
	require.NoError(t, err)

	assert.Equal(t, 4, table.Len())
	assert.Len(t, table.Routes(), 4)

	route, params, ok := table.Find(http.MethodGet, mustPath(t, "/user/7"))
	require.True(t, ok)
	assert.Equal(t, "GET /user/<id>", route.String())
	id, _ := params.Get("id")
	assert.Equal(t, "7", id)
}

func TestActionRun(t *testing.T) {
	action := NewAction(HandlerFunc(func(req *http.Request, res *http.Response) {
		id, _ := req.Param("id")
		res.Set(http.StatusOK, "user id: "+id)
	}))

	req := mustRequest(t, "GET /user/42 HTTP/1.0\r\n\r\n")
	req.BindParams(func() http.Params {
		p := http.NewParams()
		p.Set("id", "42")
		return p
	}())

	res := action.Run(req)
	assert.Equal(t, "HTTP/1.0 200 OK\r\nContent-Length: 11\r\n\r\nuser id: 42", string(res.Bytes()))
}

func TestTableConcurrentFind(t *testing.T) {
	const routes = 16
	table := NewTable()
	counters := make([]atomic.Int64, routes)
	for i := 0; i < routes; i++ {
		_, err := table.Handle(http.MethodGet, fmt.Sprintf("/r%d/<id>", i), HandlerFunc(func(*http.Request, *http.Response) {
			counters[i].Add(1)
		}))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < routes; i++ {
				req, err := http.RequestFromReader(strings.NewReader(fmt.Sprintf("GET /r%d/x HTTP/1.1\r\n\r\n", i)))
				if err != nil {
					t.Error(err)
					return
				}
				route, params, ok := table.Find(req.Method(), req.Path())
				if !ok {
					t.Errorf("no route for /r%d/x", i)
					return
				}
				req.BindParams(params)
				route.Action().Run(req)
			}
		}()
	}
	wg.Wait()

	for i := range counters {
		assert.EqualValues(t, 8, counters[i].Load(), "route %d", i)
	}
}
