package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorRecordRequest(t *testing.T) {
	m := NewMonitor()

	m.RecordRequest("GET /api", 10*time.Millisecond, false)
	m.RecordRequest("GET /api", 20*time.Millisecond, false)
	m.RecordRequest("GET /api", 30*time.Millisecond, true)

	r, ok := m.Route("GET /api")
	require.True(t, ok)
	assert.EqualValues(t, 3, r.Count)
	assert.EqualValues(t, 1, r.Errors)
	assert.Equal(t, 20*time.Millisecond, r.Average)
	assert.Equal(t, 10*time.Millisecond, r.Min)
	assert.Equal(t, 30*time.Millisecond, r.Max)
	// 10ms falls in [10ms, 50ms), as do 20ms and 30ms
	assert.EqualValues(t, 3, r.Buckets[3])

	_, ok = m.Route("GET /missing")
	assert.False(t, ok)
}

func TestMonitorSnapshot(t *testing.T) {
	m := NewMonitor()
	m.RecordConnection()
	m.RecordConnection()
	m.RecordBadRequest()
	m.RecordWrite(42)
	m.RecordWrite(-1)
	m.RecordRequest("GET /b", time.Microsecond, false)
	m.RecordRequest(Unmatched, time.Microsecond, true)
	m.RecordRequest("GET /a", 20*time.Second, false)

	s := m.Snapshot()
	assert.EqualValues(t, 2, s.Connections)
	assert.EqualValues(t, 1, s.BadRequests)
	assert.EqualValues(t, 42, s.BytesWritten)
	assert.EqualValues(t, 3, s.Requests)
	require.Len(t, s.Routes, 3)
	assert.Equal(t, "<none>", s.Routes[0].Route)
	assert.Equal(t, "GET /a", s.Routes[1].Route)
	assert.Equal(t, "GET /b", s.Routes[2].Route)
	assert.EqualValues(t, 1, s.Routes[1].Buckets[len(latencyBounds)])
	assert.EqualValues(t, 1, s.Routes[2].Buckets[0])
}

func TestMonitorConcurrent(t *testing.T) {
	m := NewMonitor()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				m.RecordRequest("GET /hot", time.Duration(i)*time.Microsecond, false)
			}
		}()
	}
	wg.Wait()

	r, ok := m.Route("GET /hot")
	require.True(t, ok)
	assert.EqualValues(t, 8000, r.Count)
	assert.Equal(t, 999*time.Microsecond, r.Max)
}

func TestBottleneckDetection(t *testing.T) {
	m := NewMonitor()

	for i := 0; i < 100; i++ {
		m.RecordRequest("GET /slow", 150*time.Millisecond, false)
		m.RecordRequest("GET /flaky", time.Millisecond, i%10 == 0)
		m.RecordRequest("GET /fine", time.Millisecond, false)
	}

	bottlenecks := m.Bottlenecks(100 * time.Millisecond)
	require.Len(t, bottlenecks, 2)
	assert.Equal(t, "GET /flaky", bottlenecks[0].Route)
	assert.Equal(t, "errors", bottlenecks[0].Type)
	assert.Equal(t, "GET /slow", bottlenecks[1].Route)
	assert.Equal(t, "latency", bottlenecks[1].Type)
}

func BenchmarkRecordRequest(b *testing.B) {
	m := NewMonitor()
	duration := 10 * time.Millisecond

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordRequest("GET /api", duration, false)
	}
}
