package ops

import (
	"fmt"
	"reflect"
	"sync"
)

// OpState is the shared mutable store owned by an engine instance and
// referenced by every op invocation and initialization hook. Values are
// keyed by their concrete Go type, one slot per type.
type OpState struct {
	mu     sync.RWMutex
	values map[reflect.Type]any
}

// NewState creates an empty OpState.
func NewState() *OpState {
	return &OpState{values: make(map[reflect.Type]any)}
}

// Put stores v in the slot for T, replacing any previous value.
func Put[T any](s *OpState, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[reflect.TypeOf((*T)(nil)).Elem()] = v
}

// Borrow returns the value stored for T. It panics if no value of that type
// has been put, mirroring the contract that initialization hooks seed every
// slot an op will later read.
func Borrow[T any](s *OpState) T {
	v, ok := TryBorrow[T](s)
	if !ok {
		panic(fmt.Sprintf("ops: no state of type %v", reflect.TypeOf((*T)(nil)).Elem()))
	}
	return v
}

// TryBorrow returns the value stored for T and whether it was present.
func TryBorrow[T any](s *OpState) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Has reports whether a value of type T has been put.
func Has[T any](s *OpState) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// Take removes and returns the value stored for T.
func Take[T any](s *OpState) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := s.values[t]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.values, t)
	return v.(T), true
}

// Len returns the number of stored slots.
func (s *OpState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
