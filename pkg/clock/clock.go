// Package clock implements the playback clock: a cooperative ticker that runs on the host's
// event loop through ports.Scheduler and never on a goroutine of its own.
package clock

import (
	"math"
	"time"

	"github.com/user/roiplayer/pkg/ports"
)

// TickFunc is invoked once per tick. Returning false disarms the clock.
type TickFunc func() bool

// PlaybackClock schedules one tick at a time. The next tick is requested only after the
// current tick returns, so ticks never overlap and never queue up behind a slow decode.
type PlaybackClock struct {
	scheduler ports.Scheduler
	tick      TickFunc
	logger    ports.Logger

	interval   time.Duration
	armed      bool
	handle     ports.TimerHandle
	generation uint64
	ticks      int
}

// New creates a disarmed clock that calls tick on scheduler.
func New(scheduler ports.Scheduler, tick TickFunc, logger ports.Logger) *PlaybackClock {
	return &PlaybackClock{
		scheduler: scheduler,
		tick:      tick,
		logger:    logger.WithComponent("clock"),
	}
}

// IntervalFor returns the tick interval for a native frame rate: round(1000/fps) ms, at least 1 ms.
// A non-positive rate yields 0.
func IntervalFor(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	ms := math.Round(1000 / fps)
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// Arm starts ticking every interval. Arming an armed clock does nothing.
func (c *PlaybackClock) Arm(interval time.Duration) {
	if c.armed {
		return
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	c.armed = true
	c.interval = interval
	c.generation++
	c.logger.Debug("Armed at %v", interval)
	c.schedule()
}

// Disarm cancels the pending tick. Disarming a disarmed clock does nothing.
func (c *PlaybackClock) Disarm() {
	if !c.armed {
		return
	}
	c.armed = false
	c.generation++
	if c.handle != 0 {
		c.scheduler.Cancel(c.handle)
		c.handle = 0
	}
	c.logger.Debug("Disarmed after %d ticks", c.ticks)
}

// Armed reports whether a tick is pending or running.
func (c *PlaybackClock) Armed() bool {
	return c.armed
}

// Interval returns the interval of the current or most recent arming.
func (c *PlaybackClock) Interval() time.Duration {
	return c.interval
}

// Ticks returns the number of ticks run since the clock was created.
func (c *PlaybackClock) Ticks() int {
	return c.ticks
}

func (c *PlaybackClock) schedule() {
	gen := c.generation
	c.handle = c.scheduler.After(c.interval, func() {
		c.fire(gen)
	})
}

func (c *PlaybackClock) fire(gen uint64) {
	// A callback delivered after Disarm or a re-arm belongs to a previous run.
	if !c.armed || gen != c.generation {
		return
	}
	c.handle = 0
	c.ticks++

	if !c.tick() {
		// Leave a clock re-armed by the tick alone.
		if gen == c.generation {
			c.Disarm()
		}
		return
	}
	// The tick itself may have disarmed or re-armed the clock.
	if c.armed && gen == c.generation {
		c.schedule()
	}
}
