package widgets

import (
	"context"
	"time"
)

// ClockInterval is how often the clock publishes the time.
const ClockInterval = time.Second

// Clock publishes the current time every ClockInterval.
type Clock struct {
	task

	interval time.Duration
	now      func() time.Time
	onTick   func(time.Time)
}

// NewClock returns a clock calling onTick with the current time.
func NewClock(onTick func(time.Time)) *Clock {
	return &Clock{
		interval: ClockInterval,
		now:      time.Now,
		onTick:   onTick,
	}
}

// Start begins ticking. It has no effect on a running clock.
func (c *Clock) Start(ctx context.Context) {
	c.start(ctx, c.interval, func(context.Context) {
		c.onTick(c.now())
	})
}

// Stop halts the clock and waits for a tick in progress to finish.
func (c *Clock) Stop() {
	c.stop()
}

// Running reports whether the clock is started.
func (c *Clock) Running() bool {
	return c.running()
}
