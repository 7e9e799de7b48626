package source

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/temoto/uplink/uplink"
)

// Component is source with channels set from code or config.
type Component struct {
	id      string
	enabled uint32 // atomic

	mu     sync.RWMutex
	points []*Point
	byName map[string]*Point
}

func NewComponent(id string) *Component {
	return &Component{
		id:      id,
		enabled: 1,
		byName:  make(map[string]*Point),
	}
}

func (c *Component) ID() string { return c.id }

func (c *Component) Enable()       { atomic.StoreUint32(&c.enabled, 1) }
func (c *Component) Disable()      { atomic.StoreUint32(&c.enabled, 0) }
func (c *Component) Enabled() bool { return atomic.LoadUint32(&c.enabled) == 1 }

// AddPoint kind is not validated here: channel of unknown kind is legal,
// engine reports and skips it.
func (c *Component) AddPoint(name string, kind uplink.Kind, access AccessMode) (*Point, error) {
	if name == "" {
		return nil, errors.NotValidf("component=%s channel=(empty)", c.id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byName[name]; ok {
		return nil, errors.AlreadyExistsf("channel=%s/%s", c.id, name)
	}
	p := &Point{
		addr:   uplink.Address{Component: c.id, Channel: name},
		kind:   kind,
		access: access,
	}
	c.points = append(c.points, p)
	c.byName[name] = p
	return p, nil
}

func (c *Component) Point(name string) (*Point, bool) {
	c.mu.RLock()
	p, ok := c.byName[name]
	c.mu.RUnlock()
	return p, ok
}

func (c *Component) Channels() []Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Channel, len(c.points))
	for i, p := range c.points {
		result[i] = p
	}
	return result
}

func (c *Component) String() string {
	return fmt.Sprintf("component(id=%s enabled=%t)", c.id, c.Enabled())
}

// Point is settable channel. Value type must match kind.
type Point struct {
	addr    uplink.Address
	kind    uplink.Kind
	access  AccessMode
	mu      sync.Mutex
	value   interface{}
	options []string
}

func (p *Point) Address() uplink.Address { return p.addr }
func (p *Point) Access() AccessMode      { return p.access }
func (p *Point) Kind() uplink.Kind       { return p.kind }

func (p *Point) Value() interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set nil marks value not available.
func (p *Point) Set(x interface{}) error {
	if x != nil && uplink.KindOf(x) != p.kind {
		return errors.NotValidf("channel=%s kind=%s value=%#v type=%T", p.addr.String(), p.kind, x, x)
	}
	p.mu.Lock()
	p.value = x
	p.mu.Unlock()
	return nil
}

// MustSet is for tests and static setup where type is known.
func (p *Point) MustSet(x interface{}) {
	if err := p.Set(x); err != nil {
		panic("code error " + err.Error())
	}
}

// SetOptions names enum values, index is option value.
func (p *Point) SetOptions(names []string) {
	p.mu.Lock()
	p.options = append([]string(nil), names...)
	p.mu.Unlock()
}

func (p *Point) Options() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.options...)
}

func (p *Point) HasOptions() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.options) != 0
}

var _ Source = &Component{}
var _ Channel = &Point{}
var _ Optioner = &Point{}
