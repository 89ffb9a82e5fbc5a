package clock

import (
	"testing"
	"time"

	"github.com/user/roiplayer/pkg/adapters/logger"
	"github.com/user/roiplayer/pkg/mocks"
	"github.com/user/roiplayer/pkg/ports"
)

func TestIntervalFor(t *testing.T) {
	tests := []struct {
		fps  float64
		want time.Duration
	}{
		{25, 40 * time.Millisecond},
		{30, 33 * time.Millisecond},
		{29.97, 33 * time.Millisecond},
		{24, 42 * time.Millisecond},
		{60, 17 * time.Millisecond},
		{5000, time.Millisecond},
		{0, 0},
		{-10, 0},
	}

	for _, tt := range tests {
		if got := IntervalFor(tt.fps); got != tt.want {
			t.Errorf("IntervalFor(%v) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestArm_TicksOnePerFire(t *testing.T) {
	sched := mocks.NewScheduler()
	count := 0
	c := New(sched, func() bool { count++; return true }, logger.NewNoop())

	c.Arm(40 * time.Millisecond)
	sched.Advance(5)

	if count != 5 {
		t.Errorf("ticks = %d, want 5", count)
	}
	if sched.Pending() != 1 {
		t.Errorf("pending = %d, want 1", sched.Pending())
	}
	for _, d := range sched.Delays {
		if d != 40*time.Millisecond {
			t.Errorf("scheduled with %v, want 40ms", d)
		}
	}
}

func TestArm_Idempotent(t *testing.T) {
	sched := mocks.NewScheduler()
	count := 0
	c := New(sched, func() bool { count++; return true }, logger.NewNoop())

	c.Arm(40 * time.Millisecond)
	c.Arm(40 * time.Millisecond)
	c.Arm(10 * time.Millisecond)

	if sched.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", sched.Pending())
	}
	sched.Advance(3)
	if count != 3 {
		t.Errorf("ticks = %d, want 3", count)
	}
	if c.Interval() != 40*time.Millisecond {
		t.Errorf("Interval = %v, want 40ms", c.Interval())
	}
}

func TestDisarm_Idempotent(t *testing.T) {
	sched := mocks.NewScheduler()
	c := New(sched, func() bool { return true }, logger.NewNoop())

	c.Disarm()
	c.Arm(time.Millisecond)
	c.Disarm()
	c.Disarm()

	if c.Armed() {
		t.Error("clock should be disarmed")
	}
	if sched.Pending() != 0 {
		t.Errorf("pending = %d, want 0", sched.Pending())
	}
	if len(sched.Cancelled) != 1 {
		t.Errorf("cancelled %d timers, want 1", len(sched.Cancelled))
	}
}

func TestTickFalseStops(t *testing.T) {
	sched := mocks.NewScheduler()
	count := 0
	c := New(sched, func() bool { count++; return count < 3 }, logger.NewNoop())

	c.Arm(time.Millisecond)
	sched.Advance(10)

	if count != 3 {
		t.Errorf("ticks = %d, want 3", count)
	}
	if c.Armed() {
		t.Error("clock should disarm when tick returns false")
	}
}

func TestRearmInsideStoppingTick(t *testing.T) {
	sched := mocks.NewScheduler()
	count := 0
	var c *PlaybackClock
	c = New(sched, func() bool {
		count++
		if count == 1 {
			c.Disarm()
			c.Arm(time.Millisecond)
			return false
		}
		return true
	}, logger.NewNoop())

	c.Arm(time.Millisecond)
	sched.Advance(3)

	if !c.Armed() {
		t.Error("a clock re-armed by the tick should stay armed")
	}
	if count != 3 {
		t.Errorf("ticks = %d, want 3", count)
	}
}

func TestDisarmInsideTick(t *testing.T) {
	sched := mocks.NewScheduler()
	var c *PlaybackClock
	c = New(sched, func() bool { c.Disarm(); return true }, logger.NewNoop())

	c.Arm(time.Millisecond)
	sched.Fire()

	if c.Armed() || sched.Pending() != 0 {
		t.Error("no tick should be scheduled after disarming inside a tick")
	}
}

func TestStaleCallbackIgnored(t *testing.T) {
	sched := &staleScheduler{Scheduler: mocks.NewScheduler()}
	count := 0
	c := New(sched, func() bool { count++; return true }, logger.NewNoop())

	c.Arm(time.Millisecond)
	c.Disarm()
	c.Arm(time.Millisecond)

	// Deliver the first run's callback even though it was cancelled.
	sched.first()
	if count != 0 {
		t.Errorf("stale callback ran the tick %d times", count)
	}

	sched.Fire()
	if count != 1 {
		t.Errorf("ticks = %d, want 1", count)
	}
}

// staleScheduler keeps every callback so a test can deliver one after it was cancelled.
type staleScheduler struct {
	*mocks.Scheduler
	all []func()
}

func (s *staleScheduler) After(d time.Duration, fn func()) ports.TimerHandle {
	s.all = append(s.all, fn)
	return s.Scheduler.After(d, fn)
}

func (s *staleScheduler) first() {
	s.all[0]()
}
