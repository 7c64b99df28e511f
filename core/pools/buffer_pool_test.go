package pools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPoolTiers(t *testing.T) {
	bp := NewBufferPool()

	small := bp.Get(100)
	assert.Equal(t, 0, len(*small))
	assert.GreaterOrEqual(t, cap(*small), SmallBufferSize)

	medium := bp.Get(SmallBufferSize + 1)
	assert.GreaterOrEqual(t, cap(*medium), MediumBufferSize)

	large := bp.Get(LargeBufferSize)
	assert.GreaterOrEqual(t, cap(*large), LargeBufferSize)

	huge := bp.Get(LargeBufferSize + 1)
	assert.GreaterOrEqual(t, cap(*huge), LargeBufferSize+1)

	stats := bp.Stats()
	assert.EqualValues(t, 1, stats.SmallHits)
	assert.EqualValues(t, 1, stats.MediumHits)
	assert.EqualValues(t, 1, stats.LargeHits)
	assert.EqualValues(t, 1, stats.Oversized)
	assert.EqualValues(t, 4, stats.TotalGets)

	*small = append(*small, "HTTP/1.1 200 OK\r\n\r\n"...)
	bp.Put(small)
	bp.Put(huge)
	bp.Put(nil)

	again := bp.Get(10)
	assert.Equal(t, 0, len(*again))
}
