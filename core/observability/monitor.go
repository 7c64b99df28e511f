package observability

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Unmatched is the route key for requests that matched no registered route.
const Unmatched = "<none>"

// latencyBounds are the upper bounds of the latency buckets; the last bucket is unbounded.
var latencyBounds = [...]time.Duration{
	time.Millisecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	5 * time.Second,
	10 * time.Second,
}

// Monitor aggregates per-route request metrics and connection totals.
// All methods are safe for concurrent use by workers.
type Monitor struct {
	routes *xsync.MapOf[string, *RouteMetrics]

	global struct {
		connections   atomic.Uint64
		requests      atomic.Uint64
		badRequests   atomic.Uint64
		bytesWritten  atomic.Uint64
		totalDuration atomic.Uint64
	}
}

// RouteMetrics stores per-route metrics
type RouteMetrics struct {
	Route          string
	Count          atomic.Uint64
	Errors         atomic.Uint64
	TotalDuration  atomic.Uint64
	MinDuration    atomic.Uint64
	MaxDuration    atomic.Uint64
	latencyBuckets [len(latencyBounds) + 1]atomic.Uint64
}

// Bottleneck flags a route whose latency or error rate is out of line.
type Bottleneck struct {
	Type     string
	Route    string
	Severity int
	Impact   float64
	Details  string
}

func NewMonitor() *Monitor {
	return &Monitor{routes: xsync.NewMapOf[string, *RouteMetrics]()}
}

// RecordConnection counts one accepted connection.
func (m *Monitor) RecordConnection() {
	m.global.connections.Add(1)
}

// RecordBadRequest counts a request that failed to parse.
func (m *Monitor) RecordBadRequest() {
	m.global.badRequests.Add(1)
}

// RecordWrite counts response bytes written to a connection.
func (m *Monitor) RecordWrite(n int) {
	if n > 0 {
		m.global.bytesWritten.Add(uint64(n))
	}
}

// RecordRequest records one dispatched request under route.
func (m *Monitor) RecordRequest(route string, duration time.Duration, isError bool) {
	metrics, _ := m.routes.LoadOrCompute(route, func() *RouteMetrics {
		return &RouteMetrics{Route: route}
	})

	metrics.Count.Add(1)
	if isError {
		metrics.Errors.Add(1)
	}

	d := uint64(max(duration, 0))
	metrics.TotalDuration.Add(d)
	metrics.updateMinMax(d)
	metrics.latencyBuckets[bucketFor(duration)].Add(1)

	m.global.requests.Add(1)
	m.global.totalDuration.Add(d)
}

func (rm *RouteMetrics) updateMinMax(d uint64) {
	for {
		cur := rm.MinDuration.Load()
		if (cur != 0 && d >= cur) || rm.MinDuration.CompareAndSwap(cur, d) {
			break
		}
	}
	for {
		cur := rm.MaxDuration.Load()
		if d <= cur || rm.MaxDuration.CompareAndSwap(cur, d) {
			break
		}
	}
}

func bucketFor(d time.Duration) int {
	for i, bound := range latencyBounds {
		if d < bound {
			return i
		}
	}
	return len(latencyBounds)
}

// RouteSnapshot is a point-in-time copy of RouteMetrics.
type RouteSnapshot struct {
	Route   string                         `json:"route"`
	Count   uint64                         `json:"count"`
	Errors  uint64                         `json:"errors"`
	Average time.Duration                  `json:"average"`
	Min     time.Duration                  `json:"min"`
	Max     time.Duration                  `json:"max"`
	Buckets [len(latencyBounds) + 1]uint64 `json:"buckets"`
}

// Snapshot is a point-in-time copy of every metric the monitor holds.
type Snapshot struct {
	Connections  uint64          `json:"connections"`
	Requests     uint64          `json:"requests"`
	BadRequests  uint64          `json:"bad_requests"`
	BytesWritten uint64          `json:"bytes_written"`
	Routes       []RouteSnapshot `json:"routes"`
}

func (rm *RouteMetrics) snapshot() RouteSnapshot {
	s := RouteSnapshot{
		Route:  rm.Route,
		Count:  rm.Count.Load(),
		Errors: rm.Errors.Load(),
		Min:    time.Duration(rm.MinDuration.Load()),
		Max:    time.Duration(rm.MaxDuration.Load()),
	}
	if s.Count > 0 {
		s.Average = time.Duration(rm.TotalDuration.Load() / s.Count)
	}
	for i := range rm.latencyBuckets {
		s.Buckets[i] = rm.latencyBuckets[i].Load()
	}
	return s
}

// Route returns the metrics recorded under one route key.
func (m *Monitor) Route(route string) (RouteSnapshot, bool) {
	rm, ok := m.routes.Load(route)
	if !ok {
		return RouteSnapshot{}, false
	}
	return rm.snapshot(), true
}

// Snapshot returns totals plus per-route metrics sorted by route.
func (m *Monitor) Snapshot() Snapshot {
	s := Snapshot{
		Connections:  m.global.connections.Load(),
		Requests:     m.global.requests.Load(),
		BadRequests:  m.global.badRequests.Load(),
		BytesWritten: m.global.bytesWritten.Load(),
		Routes:       make([]RouteSnapshot, 0, m.routes.Size()),
	}
	m.routes.Range(func(_ string, rm *RouteMetrics) bool {
		s.Routes = append(s.Routes, rm.snapshot())
		return true
	})
	sort.Slice(s.Routes, func(i, j int) bool { return s.Routes[i].Route < s.Routes[j].Route })
	return s
}

// Bottlenecks lists routes averaging over slow or failing more than 5% of the time.
func (m *Monitor) Bottlenecks(slow time.Duration) []Bottleneck {
	var out []Bottleneck
	for _, r := range m.Snapshot().Routes {
		if r.Count == 0 {
			continue
		}
		if r.Average > slow {
			out = append(out, Bottleneck{
				Type:     "latency",
				Route:    r.Route,
				Severity: 8,
				Impact:   float64(r.Average) / float64(slow) * 100,
				Details:  fmt.Sprintf("High latency (%v avg)", r.Average),
			})
		}
		if rate := float64(r.Errors) / float64(r.Count); r.Errors > 0 && rate > 0.05 {
			out = append(out, Bottleneck{
				Type:     "errors",
				Route:    r.Route,
				Severity: 10,
				Impact:   rate * 100,
				Details:  fmt.Sprintf("%.1f%% error rate", rate*100),
			})
		}
	}
	return out
}
