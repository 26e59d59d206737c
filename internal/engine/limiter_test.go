package engine

import (
	"testing"
	"time"
)

// fakeClock moves forward by step on every read and by the full duration
// on every sleep.
type fakeClock struct {
	t      time.Time
	step   time.Duration
	sleeps int
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.sleeps++
	c.t = c.t.Add(d)
}

func newTestLimiter(fps int) (*FrameLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0), step: 10 * time.Microsecond}
	l := NewFrameLimiter(fps)
	l.now = clock.now
	l.sleep = clock.sleep
	return l, clock
}

func TestFrameLimiterDisabled(t *testing.T) {
	for _, fps := range []int{0, -30} {
		l, clock := newTestLimiter(fps)
		l.Wait()
		if clock.sleeps != 0 {
			t.Errorf("fps %d: slept %d times", fps, clock.sleeps)
		}
	}
}

func TestFrameLimiterHoldsInterval(t *testing.T) {
	l, clock := newTestLimiter(50)
	start := clock.t
	for i := 0; i < 3; i++ {
		l.Wait()
	}
	got, want := clock.t.Sub(start), 60*time.Millisecond
	if got < want || got > want+time.Millisecond {
		t.Errorf("three frames took %v, want about %v", got, want)
	}
	if clock.sleeps != 3 {
		t.Errorf("slept %d times, want once per frame", clock.sleeps)
	}
}

func TestFrameLimiterSchedule(t *testing.T) {
	const interval = 10 * time.Millisecond
	l, clock := newTestLimiter(100)
	l.Wait()

	// a short hitch is absorbed by the fixed schedule
	prev := l.deadline
	clock.t = clock.t.Add(5 * time.Millisecond)
	l.Wait()
	if l.deadline != prev.Add(interval) {
		t.Errorf("deadline moved by %v, want %v", l.deadline.Sub(prev), interval)
	}

	// a stall of several frames restarts the schedule
	clock.t = clock.t.Add(100 * time.Millisecond)
	stalled := clock.t
	l.Wait()
	if d := l.deadline.Sub(stalled); d < interval || d > interval+time.Millisecond {
		t.Errorf("deadline %v after the stall, want about %v", d, interval)
	}
}
