package engine

import "time"

// spinWindow is how close to the deadline Wait stops sleeping and polls.
const spinWindow = 200 * time.Microsecond

// FrameLimiter paces the loop to a fixed frame interval when vsync is off.
type FrameLimiter struct {
	interval time.Duration
	deadline time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewFrameLimiter returns a limiter for fps frames per second. Zero or less
// disables it.
func NewFrameLimiter(fps int) *FrameLimiter {
	l := &FrameLimiter{now: time.Now, sleep: time.Sleep}
	if fps > 0 {
		l.interval = time.Second / time.Duration(fps)
	}
	return l
}

// Wait returns once the current frame's deadline has passed. Deadlines
// advance by whole intervals; a loop that falls more than one interval
// behind starts a fresh schedule from now.
func (l *FrameLimiter) Wait() {
	if l.interval == 0 {
		return
	}
	now := l.now()
	if l.deadline.IsZero() || now.Sub(l.deadline) > l.interval {
		l.deadline = now.Add(l.interval)
	} else {
		l.deadline = l.deadline.Add(l.interval)
	}

	for left := l.deadline.Sub(now); left > 0; left = l.deadline.Sub(l.now()) {
		if left > spinWindow {
			l.sleep(left - spinWindow)
		}
	}
}
