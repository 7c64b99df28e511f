package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/searchktools/serwer/core/observability"
	"github.com/searchktools/serwer/core/pools"
)

// Stats is a point-in-time view of the engine's counters.
type Stats struct {
	Monitor     observability.Snapshot     `json:"monitor"`
	Workers     pools.WorkerPoolStats      `json:"workers"`
	Buffers     pools.BufferStats          `json:"buffers"`
	Bottlenecks []observability.Bottleneck `json:"bottlenecks,omitempty"`
}

// Stats returns current statistics. Worker counters are zero before Serve.
func (e *Engine) Stats() Stats {
	s := Stats{
		Monitor:     e.monitor.Snapshot(),
		Buffers:     e.buffers.Stats(),
		Bottlenecks: e.monitor.Bottlenecks(slowRoute),
	}

	e.mu.Lock()
	pool := e.pool
	e.mu.Unlock()
	if pool != nil {
		s.Workers = pool.Stats()
	}
	return s
}

// StatsJSON returns statistics as an indented JSON string
func (e *Engine) StatsJSON() string {
	data, _ := json.MarshalIndent(e.Stats(), "", "  ")
	return string(data)
}

// StatsText returns statistics as human-readable text
func (e *Engine) StatsText() string {
	s := e.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "Connections:   %d\n", s.Monitor.Connections)
	fmt.Fprintf(&b, "Requests:      %d\n", s.Monitor.Requests)
	fmt.Fprintf(&b, "Bad requests:  %d\n", s.Monitor.BadRequests)
	fmt.Fprintf(&b, "Bytes written: %d\n", s.Monitor.BytesWritten)
	fmt.Fprintf(&b, "Workers:       %d (%d pending)\n", s.Workers.NumWorkers, s.Workers.TasksPending)
	for _, r := range s.Monitor.Routes {
		fmt.Fprintf(&b, "  %-32s count=%d errors=%d avg=%v max=%v\n", r.Route, r.Count, r.Errors, r.Average, r.Max)
	}
	for _, bn := range s.Bottlenecks {
		fmt.Fprintf(&b, "  ! [%s] %s: %s\n", bn.Type, bn.Route, bn.Details)
	}
	return b.String()
}
