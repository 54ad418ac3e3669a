package loop

import "time"

// Clock counts logical ticks since the last Reset.
type Clock struct {
	now   func() time.Time
	tps   int64
	start time.Time
}

// NewClock returns a clock running at tps ticks per second, reading time
// from now (time.Now when nil). The clock starts at Reset.
func NewClock(tps int, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	if tps <= 0 {
		tps = 10
	}
	c := &Clock{now: now, tps: int64(tps)}
	c.Reset()
	return c
}

// Reset makes the current instant tick zero.
func (c *Clock) Reset() {
	c.start = c.now()
}

// Ticks returns the whole ticks elapsed since Reset.
func (c *Clock) Ticks() int64 {
	elapsed := c.now().Sub(c.start)
	if elapsed < 0 {
		return 0
	}
	return int64(elapsed) * c.tps / int64(time.Second)
}

// Now returns the wall time.
func (c *Clock) Now() time.Time {
	return c.now()
}

// PerSecond returns the tick rate.
func (c *Clock) PerSecond() int {
	return int(c.tps)
}
