package pools

import (
	"sync"
	"sync/atomic"
)

// Buffer size tiers for serialized responses
const (
	SmallBufferSize  = 2 * 1024  // status line, a few headers, short text
	MediumBufferSize = 8 * 1024  // typical JSON
	LargeBufferSize  = 32 * 1024 // static files and larger payloads
)

var bufferTiers = [...]int{SmallBufferSize, MediumBufferSize, LargeBufferSize}

// BufferPool hands out zero-length byte slices with enough capacity for an
// estimated response size. Buffers larger than the top tier are not pooled.
type BufferPool struct {
	tiers [len(bufferTiers)]sync.Pool

	hits      [len(bufferTiers)]atomic.Uint64
	oversized atomic.Uint64
	totalGets atomic.Uint64
}

// NewBufferPool creates a new buffer pool
func NewBufferPool() *BufferPool {
	bp := &BufferPool{}
	for i, size := range bufferTiers {
		bp.tiers[i].New = func() any {
			buf := make([]byte, 0, size)
			return &buf
		}
	}
	return bp
}

func tierFor(size int) int {
	for i, limit := range bufferTiers {
		if size <= limit {
			return i
		}
	}
	return -1
}

// Get acquires a buffer whose capacity covers estimatedSize.
func (bp *BufferPool) Get(estimatedSize int) *[]byte {
	bp.totalGets.Add(1)

	i := tierFor(estimatedSize)
	if i < 0 {
		bp.oversized.Add(1)
		buf := make([]byte, 0, estimatedSize)
		return &buf
	}
	bp.hits[i].Add(1)
	return bp.tiers[i].Get().(*[]byte)
}

// Put returns a buffer to the tier matching its capacity.
func (bp *BufferPool) Put(buf *[]byte) {
	if buf == nil {
		return
	}

	*buf = (*buf)[:0]
	// A buffer that grew past its tier is filed under the largest tier it still fills.
	c := cap(*buf)
	for i := len(bufferTiers) - 1; i >= 0; i-- {
		if c >= bufferTiers[i] {
			if c <= LargeBufferSize {
				bp.tiers[i].Put(buf)
			}
			return
		}
	}
}

// Stats returns buffer pool statistics
func (bp *BufferPool) Stats() BufferStats {
	return BufferStats{
		SmallHits:  bp.hits[0].Load(),
		MediumHits: bp.hits[1].Load(),
		LargeHits:  bp.hits[2].Load(),
		Oversized:  bp.oversized.Load(),
		TotalGets:  bp.totalGets.Load(),
	}
}

// BufferStats contains buffer pool statistics
type BufferStats struct {
	SmallHits  uint64 `json:"small_hits"`
	MediumHits uint64 `json:"medium_hits"`
	LargeHits  uint64 `json:"large_hits"`
	Oversized  uint64 `json:"oversized"`
	TotalGets  uint64 `json:"total_gets"`
}
