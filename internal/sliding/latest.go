package sliding

import (
	"sync"

	"github.com/temoto/uplink/uplink"
)

// Latest keeps newest sample of bool, string or enum channel.
type Latest struct {
	mu          sync.Mutex
	kind        uplink.Kind
	last        interface{}
	valid       bool
	baseline    interface{}
	hasBaseline bool
}

func (s *Latest) Kind() uplink.Kind { return s.kind }

func (s *Latest) Add(sample interface{}) {
	if uplink.KindOf(sample) != s.kind {
		panicKind(s.kind, sample)
	}
	s.mu.Lock()
	s.last, s.valid = sample, true
	s.mu.Unlock()
}

func (s *Latest) Current() (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.valid
}

func (s *Latest) Changed() (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid || (s.hasBaseline && s.last == s.baseline) {
		return nil, false
	}
	s.baseline, s.hasBaseline = s.last, true
	return s.last, true
}

func (*Latest) closeWindow() {}
