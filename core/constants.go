package core

import (
	"errors"
	"time"
)

// DefaultHost is the address Listen binds when no host is configured.
const DefaultHost = "127.0.0.1"

// slowRoute is the average latency above which Stats reports a route as a bottleneck.
const slowRoute = 100 * time.Millisecond

// Error definitions
var (
	ErrEngineClosed   = errors.New("engine closed")
	ErrAlreadyServing = errors.New("engine is already serving")
)
