//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// hostClock counts milliseconds either from the wall clock or, when stepped,
// from simulated time. offset starts the counter somewhere other than zero so
// that a run can be made to cross the 2^32 wrap.
type hostClock struct {
	mu      sync.Mutex
	start   time.Time
	stepped bool
	ms      uint32
	offset  uint32
	acc     time.Duration
}

func newHostClock(offset uint32, stepped bool) *hostClock {
	return &hostClock{start: time.Now(), stepped: stepped, offset: offset, ms: offset}
}

func (c *hostClock) Millis() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stepped {
		return c.ms
	}
	return c.offset + uint32(time.Since(c.start)/time.Millisecond)
}

// step advances a stepped clock by d, carrying sub-millisecond remainders.
func (c *hostClock) step(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stepped {
		return
	}
	c.acc += d
	n := c.acc / time.Millisecond
	if n == 0 {
		return
	}
	c.acc %= time.Millisecond
	c.ms += uint32(n)
}

// Now is the wall time matching Millis, for time-based pins.
func (c *hostClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stepped {
		return time.Now()
	}
	return c.start.Add(time.Duration(c.ms-c.offset) * time.Millisecond)
}
