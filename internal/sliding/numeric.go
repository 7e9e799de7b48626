package sliding

import (
	"math"
	"sync"

	"github.com/temoto/uplink/uplink"
)

type ints struct {
	mu          sync.Mutex
	fold        Fold
	sum         int64
	count       int64
	last        int64
	value       int64 // representative of closed windows
	valid       bool
	baseline    int64
	hasBaseline bool
}

func (c *ints) add(x int64) {
	c.mu.Lock()
	c.last = x
	c.sum += x
	c.count++
	c.mu.Unlock()
}

func (c *ints) locked_current() (int64, bool) {
	if c.count == 0 {
		return c.value, c.valid
	}
	if c.fold == FoldMean {
		return c.sum / c.count, true
	}
	return c.last, true
}

func (c *ints) current() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked_current()
}

func (c *ints) changed() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.locked_current()
	if !ok || (c.hasBaseline && v == c.baseline) {
		return 0, false
	}
	c.baseline, c.hasBaseline = v, true
	return v, true
}

func (c *ints) closeWindow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count != 0 {
		c.value, c.valid = c.locked_current()
		c.sum, c.count = 0, 0
	}
}

type floats struct {
	mu          sync.Mutex
	fold        Fold
	single      bool // float32 channel, representative is rounded before compare
	sum         float64
	count       int64
	last        float64
	value       float64
	valid       bool
	baseline    float64
	hasBaseline bool
}

func (c *floats) add(x float64) {
	c.mu.Lock()
	c.last = x
	c.sum += x
	c.count++
	c.mu.Unlock()
}

func (c *floats) locked_current() (float64, bool) {
	if c.count == 0 {
		return c.value, c.valid
	}
	v := c.last
	if c.fold == FoldMean {
		v = c.sum / float64(c.count)
	}
	if c.single {
		v = float64(float32(v))
	}
	return v, true
}

func (c *floats) current() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked_current()
}

func (c *floats) changed() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.locked_current()
	if !ok {
		return 0, false
	}
	// NaN is not equal to itself, must not be reported every flush
	if c.hasBaseline && (v == c.baseline || (math.IsNaN(v) && math.IsNaN(c.baseline))) {
		return 0, false
	}
	c.baseline, c.hasBaseline = v, true
	return v, true
}

func (c *floats) closeWindow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count != 0 {
		c.value, c.valid = c.locked_current()
		c.sum, c.count = 0, 0
	}
}

type Int16 struct{ ints }

func (*Int16) Kind() uplink.Kind { return uplink.KindInt16 }
func (s *Int16) Add(sample interface{}) {
	x, ok := sample.(int16)
	if !ok {
		panicKind(uplink.KindInt16, sample)
	}
	s.add(int64(x))
}
func (s *Int16) Current() (interface{}, bool) {
	v, ok := s.current()
	if !ok {
		return nil, false
	}
	return int16(v), true
}
func (s *Int16) Changed() (interface{}, bool) {
	v, ok := s.changed()
	if !ok {
		return nil, false
	}
	return int16(v), true
}

type Int32 struct{ ints }

func (*Int32) Kind() uplink.Kind { return uplink.KindInt32 }
func (s *Int32) Add(sample interface{}) {
	x, ok := sample.(int32)
	if !ok {
		panicKind(uplink.KindInt32, sample)
	}
	s.add(int64(x))
}
func (s *Int32) Current() (interface{}, bool) {
	v, ok := s.current()
	if !ok {
		return nil, false
	}
	return int32(v), true
}
func (s *Int32) Changed() (interface{}, bool) {
	v, ok := s.changed()
	if !ok {
		return nil, false
	}
	return int32(v), true
}

// Int64 mean may overflow on sum of huge samples, acceptable for telemetry ranges.
type Int64 struct{ ints }

func (*Int64) Kind() uplink.Kind { return uplink.KindInt64 }
func (s *Int64) Add(sample interface{}) {
	x, ok := sample.(int64)
	if !ok {
		panicKind(uplink.KindInt64, sample)
	}
	s.add(x)
}
func (s *Int64) Current() (interface{}, bool) {
	v, ok := s.current()
	if !ok {
		return nil, false
	}
	return v, true
}
func (s *Int64) Changed() (interface{}, bool) {
	v, ok := s.changed()
	if !ok {
		return nil, false
	}
	return v, true
}

type Float32 struct{ floats }

func (*Float32) Kind() uplink.Kind { return uplink.KindFloat32 }
func (s *Float32) Add(sample interface{}) {
	x, ok := sample.(float32)
	if !ok {
		panicKind(uplink.KindFloat32, sample)
	}
	s.add(float64(x))
}
func (s *Float32) Current() (interface{}, bool) {
	v, ok := s.current()
	if !ok {
		return nil, false
	}
	return float32(v), true
}
func (s *Float32) Changed() (interface{}, bool) {
	v, ok := s.changed()
	if !ok {
		return nil, false
	}
	return float32(v), true
}

type Float64 struct{ floats }

func (*Float64) Kind() uplink.Kind { return uplink.KindFloat64 }
func (s *Float64) Add(sample interface{}) {
	x, ok := sample.(float64)
	if !ok {
		panicKind(uplink.KindFloat64, sample)
	}
	s.add(x)
}
func (s *Float64) Current() (interface{}, bool) {
	v, ok := s.current()
	if !ok {
		return nil, false
	}
	return v, true
}
func (s *Float64) Changed() (interface{}, bool) {
	v, ok := s.changed()
	if !ok {
		return nil, false
	}
	return v, true
}
