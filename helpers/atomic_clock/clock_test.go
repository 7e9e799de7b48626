package atomic_clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApi(t *testing.T) {
	t.Parallel()

	c := Now()
	tim := time.Now()
	const delta = 100 * time.Millisecond

	assert.InDelta(t, tim.UnixNano(), c.UnixNano(), float64(delta))
	assert.InDelta(t, tim.Unix(), c.Unix(), 1)
	assert.InDelta(t, tim.UnixNano()/int64(time.Millisecond), c.UnixMilli(), float64(delta/time.Millisecond))

	c.SetTime(tim)
	assert.Equal(t, tim.UnixNano(), c.UnixNano())
	assert.True(t, tim.Equal(c.Time()))

	c.SetNow()
	assert.True(t, Since(c) < delta)
}

func TestZero(t *testing.T) {
	t.Parallel()

	c := Clock{}
	assert.True(t, c.IsZero())
	assert.True(t, c.Time().IsZero())
	c.SetNowIfZero()
	assert.False(t, c.IsZero())
	first := c.Load()
	c.SetNowIfZero()
	assert.Equal(t, first, c.Load())
}
