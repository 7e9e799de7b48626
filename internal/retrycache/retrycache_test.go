package retrycache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/uplink/helpers"
)

func payloads(from, to int) [][]byte {
	result := make([][]byte, 0, to-from)
	for i := from; i < to; i++ {
		result = append(result, []byte(fmt.Sprint(i)))
	}
	return result
}

func TestBound(t *testing.T) {
	t.Parallel()

	type Case struct {
		capacity int
		pushes   int
	}
	cases := []Case{
		{1, 0},
		{1, 1},
		{1, 5},
		{3, 2},
		{3, 3},
		{3, 10},
		{100, 99},
		{100, 250},
	}
	for _, c := range cases {
		c := c
		t.Run(fmt.Sprintf("cap=%d/push=%d", c.capacity, c.pushes), func(t *testing.T) {
			t.Parallel()
			cache := New(c.capacity)
			drops := 0
			cache.OnDrop(func() { drops++ })
			for i, p := range payloads(0, c.pushes) {
				evicted := cache.Push(p)
				assert.Equal(t, i >= c.capacity, evicted)
				assert.LessOrEqual(t, cache.Len(), c.capacity)
			}
			keep := c.pushes
			if keep > c.capacity {
				keep = c.capacity
			}
			assert.Equal(t, keep, cache.Len())
			assert.Equal(t, uint64(c.pushes-keep), cache.Dropped())
			assert.Equal(t, c.pushes-keep, drops)
			assert.Equal(t, payloads(c.pushes-keep, c.pushes), cache.Items())
		})
	}
}

func TestDefaultCapacity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCapacity, New(0).Cap())
	assert.Equal(t, DefaultCapacity, New(-5).Cap())
	assert.Equal(t, 7, New(7).Cap())
}

// 1001 distinct pushes into 1000: first is gone, rest kept in order.
func TestOverflowOneMore(t *testing.T) {
	t.Parallel()

	cache := New(1000)
	all := payloads(0, 1001)
	for _, p := range all {
		cache.Push(p)
	}
	items := cache.Items()
	require.Len(t, items, 1000)
	assert.NotContains(t, items, all[0])
	assert.Equal(t, all[1:], items)
	assert.Equal(t, uint64(1), cache.Dropped())
}

func TestDrainStopsAtFailure(t *testing.T) {
	t.Parallel()

	type Case struct {
		name    string
		fail    int // index of first failing send, -1 never
		expect  int
		remains int
	}
	cases := []Case{
		{"all-ok", -1, 5, 0},
		{"first-fails", 0, 0, 5},
		{"middle-fails", 2, 2, 3},
		{"last-fails", 4, 4, 1},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			cache := New(10)
			all := payloads(0, 5)
			for _, p := range all {
				cache.Push(p)
			}
			sent := [][]byte{}
			calls := 0
			n := cache.Drain(func(b []byte) bool {
				calls++
				if len(sent) == c.fail {
					return false
				}
				sent = append(sent, b)
				return true
			})
			assert.Equal(t, c.expect, n)
			assert.Equal(t, all[:c.expect], sent)
			assert.Equal(t, all[c.expect:], cache.Items(), "remaining keep order")
			assert.Equal(t, c.remains, cache.Len())
			if c.fail >= 0 {
				assert.Equal(t, c.fail+1, calls, "no attempts after failure")
			}
		})
	}
}

func TestDrainRandomFailures(t *testing.T) {
	t.Parallel()

	rand := helpers.RandUnix()
	cache := New(50)
	delivered := [][]byte{}
	pushed := [][]byte{}
	for round := 0; round < 200; round++ {
		p := []byte(fmt.Sprint(round))
		pushed = append(pushed, p)
		cache.Push(p)
		cache.Drain(func(b []byte) bool {
			if rand.Intn(3) == 0 {
				return false
			}
			delivered = append(delivered, b)
			return true
		})
	}
	cache.Drain(func(b []byte) bool { delivered = append(delivered, b); return true })
	// with capacity never exceeded nothing is lost and order is insertion order
	if cache.Dropped() == 0 {
		assert.Equal(t, pushed, delivered)
	}
	// delivered is always subsequence of pushed in order
	j := 0
	for _, p := range pushed {
		if j < len(delivered) && string(delivered[j]) == string(p) {
			j++
		}
	}
	assert.Equal(t, len(delivered), j)
}

func TestConcurrentPushDrain(t *testing.T) {
	t.Parallel()

	cache := New(16)
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, p := range payloads(0, 1000) {
			cache.Push(p)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			cache.Drain(func([]byte) bool { return i%2 == 0 })
		}
	}()
	wg.Wait()
	assert.LessOrEqual(t, cache.Len(), cache.Cap())
}
