// Package physics holds the pieces shared by the 2D and 3D worlds: the
// fixed-timestep accumulator and the world lifecycle.
package physics

import (
	"math"

	"rama/internal/logging"
)

// DefaultStep is the fixed simulation step in seconds.
const DefaultStep = 1.0 / 60.0

// Stepper banks frame time and releases it in fixed steps.
type Stepper struct {
	Step float64
	// MaxSteps caps the catch-up steps per Advance. Zero means unbounded.
	MaxSteps int

	accumulator float64
	dirty       bool
}

// NewStepper returns a stepper with the broadphase optimization armed.
func NewStepper(step float64, maxSteps int) *Stepper {
	if step <= 0 {
		step = DefaultStep
	}
	return &Stepper{Step: step, MaxSteps: max(0, maxSteps), dirty: true}
}

// MarkDirty re-arms the one-time broadphase optimization.
func (s *Stepper) MarkDirty() {
	s.dirty = true
}

// Dirty reports whether the optimization will run before the next step.
func (s *Stepper) Dirty() bool {
	return s.dirty
}

// Residual is the banked time not yet simulated, always in [0, Step).
func (s *Stepper) Residual() float64 {
	return s.accumulator
}

// Advance adds dt to the accumulator and calls step once per whole fixed
// step banked. optimize runs before the first step after MarkDirty. The
// number of steps taken is returned.
func (s *Stepper) Advance(dt float64, optimize func(), step func(dt float64)) int {
	if dt > 0 && !math.IsInf(dt, 0) {
		s.accumulator += dt
	}

	steps := 0
	for s.accumulator >= s.Step {
		if s.MaxSteps > 0 && steps >= s.MaxSteps {
			rest := math.Mod(s.accumulator, s.Step)
			logging.Debug("physics: dropping %.4fs of simulation after %d steps", s.accumulator-rest, steps)
			s.accumulator = rest
			break
		}
		if s.dirty {
			if optimize != nil {
				optimize()
			}
			s.dirty = false
		}
		step(s.Step)
		s.accumulator -= s.Step
		steps++
	}
	if s.accumulator < 0 {
		s.accumulator = 0
	}
	return steps
}
