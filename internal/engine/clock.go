package engine

import "time"

// Clock measures the time between loop iterations.
type Clock struct {
	now     func() time.Time
	start   time.Time
	last    time.Time
	delta   float32
	elapsed time.Duration
	frames  uint64
}

// NewClock returns a clock reading time.Now.
func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource returns a clock reading now, for tests.
func NewClockWithSource(now func() time.Time) *Clock {
	t := now()
	return &Clock{now: now, start: t, last: t}
}

// Tick samples the time source once and stores the delta since the previous
// Tick (or since the clock was created).
func (c *Clock) Tick() {
	t := c.now()
	c.delta = float32(t.Sub(c.last).Seconds())
	c.last = t
	c.elapsed = t.Sub(c.start)
	c.frames++
}

// DeltaTime is the length of the last frame in seconds.
func (c *Clock) DeltaTime() float32 {
	return c.delta
}

func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Frame is the number of ticks so far.
func (c *Clock) Frame() uint64 {
	return c.frames
}
