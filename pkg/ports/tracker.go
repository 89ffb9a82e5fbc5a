package ports

import (
	"image"
)

// Tracker abstracts a single-object tracker.
type Tracker interface {
	// Init binds the tracker to region on the initial frame.
	Init(frame image.Image, region image.Rectangle) error

	// Update locates the object in frame.
	// ok is false when the object was lost on this frame.
	Update(frame image.Image) (region image.Rectangle, ok bool)

	// Close releases tracker resources.
	Close() error
}

// TrackerFactory creates new tracker instances.
type TrackerFactory interface {
	// NewTracker constructs an uninitialised tracker.
	NewTracker() (Tracker, error)
}

// TrackerFactoryFunc is a function adapter for TrackerFactory.
type TrackerFactoryFunc func() (Tracker, error)

// NewTracker implements TrackerFactory.
func (f TrackerFactoryFunc) NewTracker() (Tracker, error) {
	return f()
}
