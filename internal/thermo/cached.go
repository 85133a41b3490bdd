package thermo

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultPollPeriod is how often Cached refreshes its reading. A 12-bit
// DS18B20 conversion takes up to 750 ms.
const DefaultPollPeriod = time.Second

// Cached reads a slow sensor on its own goroutine and serves the latest
// result, so callers on a periodic task never wait for a conversion.
type Cached struct {
	src    Sensor
	period time.Duration

	mu    sync.Mutex
	value int16
	err   error
}

// NewCached wraps src. Until the first poll completes, reads fail with
// ErrSensorFault.
func NewCached(src Sensor, period time.Duration) *Cached {
	if period <= 0 {
		period = DefaultPollPeriod
	}
	return &Cached{
		src:    src,
		period: period,
		err:    fmt.Errorf("%w: no reading yet", ErrSensorFault),
	}
}

// Poll reads the wrapped sensor once and stores the result.
func (c *Cached) Poll() {
	v, err := c.src.ReadScaledCelsius()

	c.mu.Lock()
	c.value, c.err = v, err
	c.mu.Unlock()
}

// Run polls immediately and then every period until ctx is done.
func (c *Cached) Run(ctx context.Context) error {
	c.Poll()

	t := time.NewTicker(c.period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			c.Poll()
		}
	}
}

// ReadScaledCelsius returns the most recent poll result.
func (c *Cached) ReadScaledCelsius() (int16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	return c.value, nil
}
