package sliding

import (
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/temoto/uplink/uplink"
)

// Store maps channel address to its sliding value.
// Grows monotonically, safe for concurrent Observe on any keys.
type Store struct {
	fold Fold
	m    sync.Map // uplink.Address -> Value
	n    int64    // atomic
}

func NewStore(fold Fold) *Store { return &Store{fold: fold} }

func (s *Store) Len() int { return int(atomic.LoadInt64(&s.n)) }

// Observe adds sample to aggregator of addr, created with kind on first sight.
// Unknown kind returns NotSupported error and stores nothing.
func (s *Store) Observe(addr uplink.Address, kind uplink.Kind, sample interface{}) error {
	x, ok := s.m.Load(addr)
	if !ok {
		fresh, err := New(kind, s.fold)
		if err != nil {
			return errors.Annotatef(err, "channel=%s", addr.String())
		}
		var loaded bool
		if x, loaded = s.m.LoadOrStore(addr, fresh); !loaded {
			atomic.AddInt64(&s.n, 1)
		}
	}
	x.(Value).Add(sample)
	return nil
}

// Get is for diagnostics and tests.
func (s *Store) Get(addr uplink.Address) (Value, bool) {
	x, ok := s.m.Load(addr)
	if !ok {
		return nil, false
	}
	return x.(Value), true
}

// Snapshot collects changed values only (consuming changes) or current values of all
// known channels, then closes window of every aggregator.
func (s *Store) Snapshot(changedOnly bool) map[uplink.Address]interface{} {
	result := make(map[uplink.Address]interface{}, s.Len())
	s.m.Range(func(k, x interface{}) bool {
		v := x.(Value)
		var value interface{}
		var ok bool
		if changedOnly {
			value, ok = v.Changed()
		} else {
			value, ok = v.Current()
		}
		if ok {
			result[k.(uplink.Address)] = value
		}
		v.closeWindow()
		return true
	})
	return result
}
