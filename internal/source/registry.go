package source

import (
	"sync"

	"github.com/juju/errors"
)

// Registry keeps sources in order of addition.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Source
	order []Source
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Source)}
}

func (r *Registry) Add(s Source) error {
	id := s.ID()
	if id == "" {
		return errors.NotValidf("source id=(empty)")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; ok {
		return errors.AlreadyExistsf("source=%s", id)
	}
	r.byID[id] = s
	r.order = append(r.order, s)
	return nil
}

func (r *Registry) Get(id string) (Source, bool) {
	r.mu.RLock()
	s, ok := r.byID[id]
	r.mu.RUnlock()
	return s, ok
}

func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, s := range r.order {
		if s.ID() == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *Registry) EnabledSources() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Source, 0, len(r.order))
	for _, s := range r.order {
		if s.Enabled() {
			result = append(result, s)
		}
	}
	return result
}

var _ Lister = &Registry{}
