package physics

import (
	"errors"
	"sync/atomic"
)

var (
	ErrNotRunning         = errors.New("physics world is not running")
	ErrAlreadyInitialized = errors.New("physics world already initialized")
	ErrDestroyed          = errors.New("physics world has been shut down")
)

// State is the lifecycle position of a world.
type State int32

const (
	Uninitialized State = iota
	Running
	Destroyed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Destroyed:
		return "destroyed"
	}
	return "uninitialized"
}

// Lifecycle tracks Uninitialized -> Running -> Destroyed.
type Lifecycle struct {
	state atomic.Int32
}

func (l *Lifecycle) State() State {
	return State(l.state.Load())
}

// Start moves to Running.
func (l *Lifecycle) Start() error {
	if l.state.CompareAndSwap(int32(Uninitialized), int32(Running)) {
		return nil
	}
	if l.State() == Destroyed {
		return ErrDestroyed
	}
	return ErrAlreadyInitialized
}

// Stop moves from Running to Destroyed.
func (l *Lifecycle) Stop() error {
	if l.state.CompareAndSwap(int32(Running), int32(Destroyed)) {
		return nil
	}
	if l.State() == Destroyed {
		return ErrDestroyed
	}
	return ErrNotRunning
}

// Check returns nil only while Running.
func (l *Lifecycle) Check() error {
	switch l.State() {
	case Running:
		return nil
	case Destroyed:
		return ErrDestroyed
	}
	return ErrNotRunning
}
