package mocks

import (
	"errors"
	"image"

	"github.com/user/roiplayer/pkg/ports"
)

// Tracker is a mock implementation of ports.Tracker.
// Without UpdateFunc it reports the initial region on every frame.
type Tracker struct {
	InitFunc   func(frame image.Image, region image.Rectangle) error
	UpdateFunc func(frame image.Image) (image.Rectangle, bool)

	Region     image.Rectangle
	InitFrames []image.Image
	Updates    int
	Closed     bool
}

func (m *Tracker) Init(frame image.Image, region image.Rectangle) error {
	m.InitFrames = append(m.InitFrames, frame)
	m.Region = region
	if m.InitFunc != nil {
		return m.InitFunc(frame, region)
	}
	return nil
}

func (m *Tracker) Update(frame image.Image) (image.Rectangle, bool) {
	m.Updates++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(frame)
	}
	return m.Region, true
}

func (m *Tracker) Close() error {
	m.Closed = true
	return nil
}

var _ ports.Tracker = (*Tracker)(nil)

// TrackerFactory is a mock implementation of ports.TrackerFactory.
// Every created tracker is recorded; New customises each one before it is returned.
type TrackerFactory struct {
	New func() *Tracker
	Err error

	Created []*Tracker
}

// ErrNoTracker can be used as TrackerFactory.Err.
var ErrNoTracker = errors.New("mock: tracker unavailable")

func (m *TrackerFactory) NewTracker() (ports.Tracker, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t := &Tracker{}
	if m.New != nil {
		t = m.New()
	}
	m.Created = append(m.Created, t)
	return t, nil
}

// Last returns the most recently created tracker, nil if none.
func (m *TrackerFactory) Last() *Tracker {
	if len(m.Created) == 0 {
		return nil
	}
	return m.Created[len(m.Created)-1]
}

var _ ports.TrackerFactory = (*TrackerFactory)(nil)
