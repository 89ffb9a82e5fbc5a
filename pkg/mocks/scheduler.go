package mocks

import (
	"sort"
	"time"

	"github.com/user/roiplayer/pkg/ports"
)

// Scheduler is a manual ports.Scheduler. Nothing runs until Fire or Advance is called.
type Scheduler struct {
	next    ports.TimerHandle
	pending map[ports.TimerHandle]*scheduled

	// Delays records the delay of every After call.
	Delays    []time.Duration
	Cancelled []ports.TimerHandle
}

type scheduled struct {
	handle ports.TimerHandle
	delay  time.Duration
	fn     func()
}

// NewScheduler creates a new manual scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[ports.TimerHandle]*scheduled)}
}

func (m *Scheduler) After(d time.Duration, fn func()) ports.TimerHandle {
	m.next++
	m.pending[m.next] = &scheduled{handle: m.next, delay: d, fn: fn}
	m.Delays = append(m.Delays, d)
	return m.next
}

func (m *Scheduler) Cancel(h ports.TimerHandle) {
	if _, ok := m.pending[h]; ok {
		delete(m.pending, h)
		m.Cancelled = append(m.Cancelled, h)
	}
}

// Pending returns the number of callbacks waiting to run.
func (m *Scheduler) Pending() int {
	return len(m.pending)
}

// Fire runs every callback pending at the time of the call, oldest first.
// Callbacks scheduled while firing wait for the next call. It returns the number run.
func (m *Scheduler) Fire() int {
	batch := make([]*scheduled, 0, len(m.pending))
	for _, s := range m.pending {
		batch = append(batch, s)
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].handle < batch[j].handle })

	ran := 0
	for _, s := range batch {
		if _, ok := m.pending[s.handle]; !ok {
			continue
		}
		delete(m.pending, s.handle)
		s.fn()
		ran++
	}
	return ran
}

// Advance calls Fire n times.
func (m *Scheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		m.Fire()
	}
}

var _ ports.Scheduler = (*Scheduler)(nil)
