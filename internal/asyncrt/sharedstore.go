package asyncrt

import (
	"sync"

	"github.com/rufflang/ruff/internal/runtime"
)

// SharedStore is the process-wide string-keyed value table used for
// inter-thread counters and signaling between `spawn`-ed OS threads. It
// is sequentially consistent via one process-wide lock — deliberately
// not a sharded or lock-free map, so cross-thread reads always observe
// the latest write.
type SharedStore struct {
	mu sync.Mutex
	values map[string]runtime.Value
}

var shared = &SharedStore{values: make(map[string]runtime.Value)}

// SharedValueStore returns the single process-wide store.
func SharedValueStore() *SharedStore { return shared }

func (s *SharedStore) Set(key string, val runtime.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = val
}

func (s *SharedStore) Get(key string) (runtime.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *SharedStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

func (s *SharedStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// AddInt atomically adds delta to the integer binding at key, failing if
// the binding is missing or non-integer.
func (s *SharedStore) AddInt(key string, delta int64) runtime.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return &runtime.ErrorValue{Message: "shared_add_int: key " + key + " is not set"}
	}
	iv, ok := v.(*runtime.IntValue)
	if !ok {
		return &runtime.ErrorValue{Message: "shared_add_int: key " + key + " is not an integer"}
	}
	next := &runtime.IntValue{Value: iv.Value + delta}
	s.values[key] = next
	return next
}
