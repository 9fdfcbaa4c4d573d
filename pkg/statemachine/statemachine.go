// Package statemachine provides a minimal generic state machine where the
// states are functions and each state function returns the next state
// (Rob Pike's lexer pattern). The showdown coordinator drives its hand phases
// through it.
package statemachine

import (
	"fmt"
	"sync"
)

// StateFn is a state: it inspects the entity and returns the next state
// function, or nil to terminate.
type StateFn[T any] func(*T) StateFn[T]

// StateMachine is a thread-safe wrapper around the current state function.
type StateMachine[T any] struct {
	entity  *T
	stateFn StateFn[T]
	mutex   sync.RWMutex
}

// NewStateMachine creates a new state machine for the given entity
func NewStateMachine[T any](entity *T, initialStateFn StateFn[T]) *StateMachine[T] {
	return &StateMachine[T]{
		entity:  entity,
		stateFn: initialStateFn,
	}
}

// Step executes the current state function once and transitions to whatever
// state it returns. Stepping a terminated machine is a no-op.
func (sm *StateMachine[T]) Step() {
	sm.mutex.RLock()
	currentStateFn := sm.stateFn
	sm.mutex.RUnlock()

	if currentStateFn == nil {
		return
	}

	nextStateFn := currentStateFn(sm.entity)

	sm.mutex.Lock()
	sm.stateFn = nextStateFn
	sm.mutex.Unlock()
}

// Dispatch sets stateFn as the current state and executes it once,
// transitioning to the state it returns.
func (sm *StateMachine[T]) Dispatch(stateFn StateFn[T]) {
	sm.mutex.Lock()
	sm.stateFn = stateFn
	sm.mutex.Unlock()

	sm.Step()
}

// GetCurrentState returns the current state function (thread-safe)
func (sm *StateMachine[T]) GetCurrentState() StateFn[T] {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.stateFn
}

// SetState sets the state function without executing it
func (sm *StateMachine[T]) SetState(stateFn StateFn[T]) {
	sm.mutex.Lock()
	sm.stateFn = stateFn
	sm.mutex.Unlock()
}

// Done reports whether the machine has reached the terminal nil state.
func (sm *StateMachine[T]) Done() bool {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.stateFn == nil
}

// Same reports whether two state functions are the same state. Go functions
// are not comparable directly, so this compares their pointers.
func Same[T any](a, b StateFn[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprintf("%p", a) == fmt.Sprintf("%p", b)
}
