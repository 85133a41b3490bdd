package sched

import "sync/atomic"

// Countdown is a millisecond delay counter. The tick goroutine decrements
// it, the controller arms and polls it.
type Countdown struct {
	ms atomic.Uint32
}

// Arm sets the remaining time.
func (c *Countdown) Arm(ms uint32) {
	c.ms.Store(ms)
}

// Tick decrements the counter, stopping at zero.
func (c *Countdown) Tick() {
	for {
		v := c.ms.Load()
		if v == 0 || c.ms.CompareAndSwap(v, v-1) {
			return
		}
	}
}

// Remaining returns the milliseconds left.
func (c *Countdown) Remaining() uint32 {
	return c.ms.Load()
}

// Expired reports whether the counter has reached zero. It stays true
// until the next Arm.
func (c *Countdown) Expired() bool {
	return c.ms.Load() == 0
}
